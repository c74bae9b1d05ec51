package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"edu_portal/internal/service"
	"edu_portal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile  = "templates/layout.html"
	partialsDir = "templates/partials"
	pagesDir    = "templates/pages"
)

// Renderer 启动时把每个页面与布局、公共片段一起解析好
type Renderer struct {
	pages map[string]*template.Template
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown 原始 HTML 不会被透传（goldmark 默认不开启 unsafe）
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

var funcs = template.FuncMap{
	"markdown":   Markdown,
	"percentage": service.FormatPercentage,
	"won": func(amount float64) string {
		return fmt.Sprintf("%.0f원", amount)
	},
}

func NewRenderer() (*Renderer, error) {
	partials, err := fs.Glob(templateFS, partialsDir+"/*.html")
	if err != nil {
		return nil, err
	}
	pages, err := fs.Glob(templateFS, pagesDir+"/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		files := append([]string{layoutFile}, partials...)
		files = append(files, page)

		tpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[strings.TrimSuffix(path.Base(page), ".html")] = tpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}

// HTML 先渲染到缓冲区，模板出错时不会输出半个页面
func (r *Renderer) HTML(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		logger.Log.Error("render page failed", zap.String("page", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "페이지를 표시할 수 없습니다.")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
