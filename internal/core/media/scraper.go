package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ScrapeResult 網頁擷取結果
type ScrapeResult struct {
	HeroImage string
	Text      string
}

// 擷取文字時整棵跳過的元素
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"noscript": true,
}

// scrapePage 把 URL 當 HTML 頁面擷取：主圖與可見文字
// 主圖優先序：Open Graph、Twitter 卡片、第一個 Recipe 型 JSON-LD 的 image 欄位
// 文字去除腳本樣式導覽等區塊並截斷到設定長度
func (s *Service) scrapePage(ctx context.Context, rawURL string) (*ScrapeResult, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("scrape failed: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("scrape failed: not an HTML page (%q)", contentType)
	}

	doc, err := html.Parse(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}

	base, _ := url.Parse(rawURL)

	result := &ScrapeResult{
		HeroImage: resolveURL(base, findHeroImage(doc)),
		Text:      extractVisibleText(doc, s.config.Media.ScrapeTextLimit),
	}

	common.LogMediaProcessing("info", "網頁擷取完成",
		zap.Bool("hero_image_found", result.HeroImage != ""),
		zap.Int("text_length", len(result.Text)),
	)

	return result, nil
}

// findHeroImage 依優先序找主圖 URL，找不到回傳空字串
func findHeroImage(doc *html.Node) string {
	if img := findMetaContent(doc, "property", "og:image"); img != "" {
		return img
	}
	if img := findMetaContent(doc, "name", "twitter:image"); img != "" {
		return img
	}
	return findJSONLDRecipeImage(doc)
}

// findMetaContent 找 <meta attr=value content=...> 的 content 值
func findMetaContent(n *html.Node, attr, value string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var matched bool
		var content string
		for _, a := range n.Attr {
			if a.Key == attr && strings.EqualFold(a.Val, value) {
				matched = true
			}
			if a.Key == "content" {
				content = a.Val
			}
		}
		if matched && content != "" {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findMetaContent(c, attr, value); found != "" {
			return found
		}
	}
	return ""
}

// findJSONLDRecipeImage 掃描 JSON-LD 區塊，取第一個 Recipe 型節點的 image
func findJSONLDRecipeImage(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "script" {
		for _, a := range n.Attr {
			if a.Key == "type" && strings.Contains(a.Val, "ld+json") && n.FirstChild != nil {
				if img := recipeImageFromJSONLD(n.FirstChild.Data); img != "" {
					return img
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findJSONLDRecipeImage(c); found != "" {
			return found
		}
	}
	return ""
}

// recipeImageFromJSONLD 解析一段 JSON-LD 文字並走訪其中的 Recipe 節點
// 結構不可信任：頂層可能是物件、陣列或帶 @graph 的容器
func recipeImageFromJSONLD(raw string) string {
	var tree interface{}
	if err := common.ParseJSON(strings.TrimSpace(raw), &tree); err != nil {
		return ""
	}
	return walkJSONLD(tree)
}

func walkJSONLD(node interface{}) string {
	switch v := node.(type) {
	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			if img := imageFieldURL(v["image"]); img != "" {
				return img
			}
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if img := walkJSONLD(item); img != "" {
					return img
				}
			}
		}
	case []interface{}:
		for _, item := range v {
			if img := walkJSONLD(item); img != "" {
				return img
			}
		}
	}
	return ""
}

func isRecipeType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

// imageFieldURL schema.org 的 image 可為字串、字串陣列或 ImageObject
func imageFieldURL(v interface{}) string {
	switch img := v.(type) {
	case string:
		return img
	case []interface{}:
		for _, item := range img {
			if u := imageFieldURL(item); u != "" {
				return u
			}
		}
	case map[string]interface{}:
		if u, ok := img["url"].(string); ok {
			return u
		}
	}
	return ""
}

// resolveURL 把相對圖片網址解析成絕對網址
func resolveURL(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

// extractVisibleText 取頁面可見文字，合併空白並截斷
func extractVisibleText(doc *html.Node, limit int) string {
	var sb strings.Builder
	collectText(doc, &sb)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
	case html.TextNode:
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
