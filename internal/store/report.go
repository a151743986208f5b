package store

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"youtube-digest/internal/types"
)

// reportData is the view model for the rendered report page.
type reportData struct {
	Result      *types.Result
	WatchURL    string
	Paragraphs  []string
	GeneratedAt string
}

// renderReport produces the standalone HTML report for a Result.
func renderReport(result *types.Result) ([]byte, error) {
	data := reportData{
		Result:      result,
		WatchURL:    types.WatchURL(result.VideoID),
		Paragraphs:  splitParagraphs(result.KoreanTranscript),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitParagraphs breaks the translated transcript on blank lines.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Result.Summary.OneLiner}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; line-height: 1.8; color: #333; background: #f8f9fa; }
.container { max-width: 800px; margin: 0 auto; padding: 40px 20px; }
header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px 20px; margin-bottom: 30px; border-radius: 16px; }
header h1 { font-size: 1.8em; margin-bottom: 16px; }
.meta { display: flex; gap: 12px; flex-wrap: wrap; align-items: center; }
.difficulty, .video-link { background: rgba(255,255,255,0.2); padding: 4px 12px; border-radius: 20px; font-size: 0.85em; color: white; text-decoration: none; }
.tags { margin-top: 16px; display: flex; gap: 8px; flex-wrap: wrap; }
.tag { background: rgba(255,255,255,0.25); padding: 4px 12px; border-radius: 16px; font-size: 0.85em; }
section { background: white; padding: 30px; margin-bottom: 20px; border-radius: 12px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
section h2 { font-size: 1.3em; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 2px solid #667eea; color: #444; }
.key-point { margin-bottom: 24px; padding: 20px; background: #f8f9fa; border-radius: 8px; border-left: 4px solid #667eea; }
.key-point h4 { color: #667eea; margin-bottom: 8px; font-size: 1.1em; }
.key-point .example { margin-top: 12px; padding: 12px; background: #e9ecef; border-radius: 6px; font-size: 0.9em; color: #666; }
.quote { margin-bottom: 20px; padding: 20px; background: #f5f7fa; border-radius: 8px; border: none; }
.quote .original { font-style: italic; color: #666; margin-bottom: 8px; font-size: 0.95em; }
.quote .korean { color: #333; font-weight: 500; font-size: 1.05em; }
.actions { padding-left: 20px; }
.actions li { margin-bottom: 12px; color: #444; }
.topics { display: flex; gap: 10px; flex-wrap: wrap; }
.topic { background: #e9ecef; padding: 6px 14px; border-radius: 20px; font-size: 0.9em; color: #555; }
.transcript { max-height: 400px; overflow-y: auto; padding: 20px; background: #f8f9fa; border-radius: 8px; }
.transcript p { margin-bottom: 16px; color: #444; }
footer { text-align: center; padding: 20px; color: #888; font-size: 0.85em; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>{{.Result.Summary.OneLiner}}</h1>
<div class="meta">
<span class="difficulty">{{.Result.Summary.Difficulty}}</span>
<a href="{{.WatchURL}}" target="_blank" class="video-link">YouTube에서 보기</a>
</div>
<div class="tags">{{range .Result.Summary.Tags}}<span class="tag">{{.}}</span>{{end}}</div>
</header>
{{if .Result.Summary.KeyPoints}}<section>
<h2>핵심 포인트</h2>
{{range .Result.Summary.KeyPoints}}<div class="key-point">
<h4>{{.Title}}</h4>
<p>{{.Description}}</p>
{{if .Example}}<p class="example">{{.Example}}</p>{{end}}
</div>{{end}}
</section>{{end}}
{{if .Result.Summary.Quotes}}<section>
<h2>인용구</h2>
{{range .Result.Summary.Quotes}}<blockquote class="quote">
<p class="original">&quot;{{.Original}}&quot;</p>
<p class="korean">&quot;{{.Korean}}&quot;</p>
</blockquote>{{end}}
</section>{{end}}
{{if .Result.Summary.ActionItems}}<section>
<h2>액션 아이템</h2>
<ul class="actions">{{range .Result.Summary.ActionItems}}<li>{{.}}</li>{{end}}</ul>
</section>{{end}}
{{if .Result.Summary.RelatedTopics}}<section>
<h2>연관 주제</h2>
<div class="topics">{{range .Result.Summary.RelatedTopics}}<span class="topic">{{.}}</span>{{end}}</div>
</section>{{end}}
<section>
<h2>전체 번역</h2>
<div class="transcript">{{range .Paragraphs}}<p>{{.}}</p>{{end}}</div>
</section>
<footer>
<p>Generated by YouTube 번역 에이전트 | {{.GeneratedAt}}</p>
</footer>
</div>
</body>
</html>
`))
