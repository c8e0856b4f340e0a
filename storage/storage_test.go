package storage

import (
	"os"
	"path/filepath"
	"testing"

	"pagecraft/config"
	"pagecraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func sampleSite() models.SiteDocument {
	return models.SiteDocument{
		Settings: models.Settings{BackgroundColor: "#111111", FontFamily: "serif"},
		Elements: []models.Element{
			{
				ID: "el_1_1", Type: models.ElementText,
				X: models.Float(12.5), Y: models.Float(0), Width: models.Float(40),
				FontSize: models.Float(24), Align: models.AlignCenter, Content: "Hallo",
			},
			{
				ID: "el_2_2", Type: models.ElementButton,
				X: models.Float(40), Y: models.Float(80), Shadow: models.ShadowStrong,
				Content: "Go", URL: "https://example.com",
			},
		},
	}
}

func TestReadJSONFallbacks(t *testing.T) {
	dir := t.TempDir()
	fallback := models.EmptySite()

	t.Run("missing file", func(t *testing.T) {
		got := ReadJSON(filepath.Join(dir, "missing.json"), fallback)
		assert.Equal(t, fallback, got)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		assert.Equal(t, fallback, ReadJSON(path, fallback))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{\"settings\": "), 0644))
		assert.Equal(t, fallback, ReadJSON(path, fallback))
	})
}

func TestWriteJSONPrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site.json")
	require.NoError(t, WriteJSON(path, models.EmptySite()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"settings\": {},\n  \"elements\": []\n}", string(data))
}

func TestSiteFileEmptyStoreFallsBack(t *testing.T) {
	repo := NewSiteFile(filepath.Join(t.TempDir(), "site.json"))

	doc := repo.Load()
	assert.Equal(t, models.Settings{}, doc.Settings)
	assert.NotNil(t, doc.Elements)
	assert.Empty(t, doc.Elements)
}

func TestSiteFileInitSeedsDefaultOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "site.json")
	repo := NewSiteFile(path)
	require.NoError(t, repo.Init())
	assert.Equal(t, models.DefaultSite(), repo.Load())

	require.NoError(t, repo.Save(sampleSite()))
	require.NoError(t, repo.Init())
	assert.Equal(t, sampleSite(), repo.Load())
}

func TestSiteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	bolt, err := OpenSiteBolt(filepath.Join(dir, "site.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	repos := map[string]SiteRepository{
		"file": NewSiteFile(filepath.Join(dir, "site.json")),
		"bolt": bolt,
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			doc := sampleSite()
			require.NoError(t, repo.Save(doc))
			assert.Equal(t, doc, repo.Load())

			// full replacement, no merge
			replacement := models.SiteDocument{Elements: []models.Element{{ID: "only", Type: models.ElementText}}}
			require.NoError(t, repo.Save(replacement))
			assert.Equal(t, replacement, repo.Load())
		})
	}
}

func TestSiteBoltSeedsDefault(t *testing.T) {
	repo, err := OpenSiteBolt(filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	defer repo.Close()

	assert.Equal(t, models.DefaultSite(), repo.Load())
}

func TestOpenSiteSelectsDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DataDir = t.TempDir()

	repo, err := OpenSite(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SiteFile{}, repo)
	assert.FileExists(t, cfg.SiteFile())

	cfg.Storage.Driver = config.DriverBolt
	repo, err = OpenSite(cfg)
	require.NoError(t, err)
	defer repo.Close()
	assert.IsType(t, &SiteBolt{}, repo)
}

func TestUserStoreCreate(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, store.Init())
	assert.Empty(t, store.List().Users)

	user, err := store.Create("admin", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	found, err := store.Find("admin")
	require.NoError(t, err)
	assert.Equal(t, user, found)

	_, err = store.Find("Admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserStoreCreateRejects(t *testing.T) {
	store := NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	_, err := store.Create("admin", "secret")
	require.NoError(t, err)

	_, err = store.Create("admin", "other")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = store.Create("", "pw")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = store.Create("someone", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	assert.Len(t, store.List().Users, 1)
}
