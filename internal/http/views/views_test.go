package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/bloghub/internal/domain/article"
)

func TestTemplates_RenderArticles(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	for _, name := range []string{"login.html", "signup.html", "articles.html", "article_form.html"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %s missing", name)
		}
	}

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "articles.html", map[string]interface{}{
		"Email": "a@example.com",
		"Articles": []article.Article{
			{ID: 1, Title: "<b>Hi</b>", Content: "body", CreatedAt: now, UpdatedAt: now},
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "&lt;b&gt;Hi&lt;/b&gt;") {
		t.Fatalf("title was not escaped: %s", out)
	}
	if !strings.Contains(out, "2026-03-01 09:30") {
		t.Fatalf("missing timestamp: %s", out)
	}
}
