package web

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagecraft/config"
	"pagecraft/middleware"
	"pagecraft/models"
	"pagecraft/site"
	"pagecraft/storage"
	assets "pagecraft/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newApp(t *testing.T, doc *models.SiteDocument) (*fiber.App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.json")
	repo := storage.NewSiteFile(path)
	if doc != nil {
		require.NoError(t, repo.Save(*doc))
	}
	svc := site.NewService(repo, nil, nil)

	app := fiber.New(fiber.Config{
		Views:        assets.NewEngine(),
		ViewsLayout:  "layouts/main",
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Get("/", NewPublicHandler(svc).ShowSite)
	app.Get("/admin", NewAdminHandler(config.Default()).ShowEditor)
	return app, path
}

func getPage(t *testing.T, app *fiber.App, target string) *html.Node {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestPublicPageAppliesDefaults(t *testing.T) {
	doc := models.SiteDocument{Elements: []models.Element{
		{ID: "t", Type: models.ElementText},
		{ID: "b", Type: models.ElementButton},
	}}
	app, _ := newApp(t, &doc)

	page := getPage(t, app, "/")
	root := findByID(page, "public-root")
	require.NotNil(t, root)
	nodes := elementChildren(root)
	require.Len(t, nodes, 2)

	assert.Equal(t, "public-element", attr(nodes[0], "class"))
	assert.Equal(t, "left:10px;top:10px;width:30%;height:80px;border-radius:14px;color:#e5e7eb;background:rgba(15, 23, 42, 0.85);font-size:16px;text-align:left", attr(nodes[0], "style"))
	assert.Equal(t, "Text", text(nodes[0]))

	links := elementChildren(nodes[1])
	require.Len(t, links, 1)
	assert.Equal(t, "a", links[0].Data)
	assert.Equal(t, "public-button", attr(links[0], "class"))
	assert.Equal(t, "#", attr(links[0], "href"))
	assert.Equal(t, "Button", text(links[0]))

	body := findByID(page, "public-body")
	require.NotNil(t, body)
	assert.Contains(t, attr(body, "style"), "radial-gradient(circle at top left, #020617, #000 75%)")
	assert.Contains(t, attr(body, "style"), "font-family:'Poppins', system-ui")
}

func TestPublicPageHonorsExplicitValues(t *testing.T) {
	doc := models.SiteDocument{
		Settings: models.Settings{BackgroundColor: "#111111", GradientFrom: "#222222"},
		Elements: []models.Element{
			{ID: "a", Type: models.ElementText, X: models.Float(0), Y: models.Float(5), FontSize: models.Float(24),
				Shadow: models.ShadowStrong, Content: "<script>alert(1)</script>"},
			{ID: "b", Type: models.ElementButton, Content: "Los", URL: "https://example.com/x", Shadow: "glow"},
		},
	}
	app, _ := newApp(t, &doc)

	page := getPage(t, app, "/")
	nodes := elementChildren(findByID(page, "public-root"))
	require.Len(t, nodes, 2)

	assert.Equal(t, "public-element shadow-strong", attr(nodes[0], "class"))
	assert.Contains(t, attr(nodes[0], "style"), "left:0px;top:5px;")
	assert.Contains(t, attr(nodes[0], "style"), "font-size:24px")
	assert.Equal(t, "<script>alert(1)</script>", text(nodes[0]))
	assert.Empty(t, elementChildren(nodes[0]))

	assert.Equal(t, "public-element", attr(nodes[1], "class"))
	link := elementChildren(nodes[1])[0]
	assert.Equal(t, "https://example.com/x", attr(link, "href"))
	assert.Equal(t, "Los", text(link))

	body := findByID(page, "public-body")
	assert.Contains(t, attr(body, "style"), "#111111")
}

func TestPublicPageKeepsDocumentOrder(t *testing.T) {
	doc := models.SiteDocument{Elements: []models.Element{
		{ID: "first", Type: models.ElementText},
		{ID: "second", Type: models.ElementText},
		{ID: "third", Type: models.ElementButton},
	}}
	app, _ := newApp(t, &doc)

	nodes := elementChildren(findByID(getPage(t, app, "/"), "public-root"))
	require.Len(t, nodes, 3)
	for i, id := range []string{"first", "second", "third"} {
		assert.Equal(t, id, attr(nodes[i], "data-id"))
	}
}

func TestPublicPageWithUnreadableStore(t *testing.T) {
	app, path := newApp(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	root := findByID(getPage(t, app, "/"), "public-root")
	require.NotNil(t, root)
	assert.Empty(t, elementChildren(root))
}

func TestAdminShell(t *testing.T) {
	app, _ := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	page, err := html.Parse(strings.NewReader(string(raw)))
	require.NoError(t, err)
	require.NotNil(t, findByID(page, "login-form"))
	require.NotNil(t, findByID(page, "preview-root"))
	assert.Equal(t, "x-admin-token", attr(findByID(page, "admin-body"), "data-header"))
	assert.NotEmpty(t, attr(findByID(page, "login-error"), "data-message"))
}
