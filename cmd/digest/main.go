package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"youtube-digest/internal/llm"
	"youtube-digest/internal/pipeline"
	"youtube-digest/internal/store"
	"youtube-digest/internal/transcript"
)

func main() {
	outputDir := flag.String("output", "output", "Directory for result artifacts")
	model := flag.String("model", llm.DefaultModel, "Claude model to use")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: digest [-output <dir>] [-model <name>] <youtube-url-or-video-id>")
		fmt.Fprintln(os.Stderr, "\nExample:")
		fmt.Fprintln(os.Stderr, "  digest https://youtu.be/dQw4w9WgXcQ")
		os.Exit(1)
	}
	rawURL := flag.Arg(0)

	// .env is optional; environment variables may be set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "오류: ANTHROPIC_API_KEY 환경변수를 설정해주세요.")
		os.Exit(1)
	}

	artifactStore, err := store.New(*outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "오류 발생: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	pipe := pipeline.New(
		transcript.NewClient(nil),
		llm.NewClient(apiKey, *model),
		artifactStore,
		logger,
	)

	logger.Println("=== YouTube 번역 에이전트 시작 ===")

	result, err := pipe.Process(context.Background(), rawURL, pipeline.Hooks{
		OnStage: func(stage string) { logger.Println(stage) },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "오류 발생: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n처리 완료!")
	fmt.Printf("결과 파일: %s\n", filepath.Join(*outputDir, result.VideoID+".json"))
	fmt.Printf("리포트:    %s\n", filepath.Join(*outputDir, result.VideoID+".html"))
	fmt.Printf("한 줄 요약: %s\n", result.Summary.OneLiner)
	fmt.Printf("태그: %s\n", strings.Join(result.Summary.Tags, ", "))
}
