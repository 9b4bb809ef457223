package candidate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire/internal/hiring"
	"smarthire/pkg/sentinel"
)

func newCandidate(id, userID string) *hiring.Candidate {
	return &hiring.Candidate{
		ID:               id,
		UserID:           userID,
		FullName:         "Alex Candidate",
		OriginalFilename: "cv.pdf",
		CVText:           "ten years of Go experience",
		FileURL:          "https://files.test/cv.pdf",
		FileType:         "application/pdf",
		ProcessedAt:      time.Now(),
	}
}

func TestInMemoryStore_CreateAndFind(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newCandidate("c1", "u1")))

	got, err := store.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Candidate", got.FullName)

	err = store.Create(ctx, newCandidate("c1", "u1"))
	require.ErrorIs(t, err, sentinel.ErrAlreadyUsed)

	_, err = store.FindByID(ctx, "missing")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStore_ListByUser(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"c1", "c2", "c3"} {
		c := newCandidate(id, "u1")
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Create(ctx, c))
	}
	require.NoError(t, store.Create(ctx, newCandidate("other", "u2")))

	got, err := store.ListByUser(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c3", got[0].ID, "newest first")
	assert.Equal(t, "c2", got[1].ID)

	got, err = store.ListByUser(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newCandidate("c1", "u1")))
	require.NoError(t, store.Delete(ctx, "c1"))
	require.ErrorIs(t, store.Delete(ctx, "c1"), sentinel.ErrNotFound)
}

func TestInMemoryStore_SearchBySimilarity(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	exact := newCandidate("exact", "u1")
	exact.CVEmbedding = []float32{1, 0, 0}
	near := newCandidate("near", "u1")
	near.CVEmbedding = []float32{0.9, 0.1, 0}
	far := newCandidate("far", "u1")
	far.CVEmbedding = []float32{0, 1, 0}
	otherUser := newCandidate("other", "u2")
	otherUser.CVEmbedding = []float32{1, 0, 0}

	for _, c := range []*hiring.Candidate{exact, near, far, otherUser} {
		require.NoError(t, store.Create(ctx, c))
	}

	hits, err := store.SearchBySimilarity(ctx, []float32{1, 0, 0}, "u1", 0.8, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "exact", hits[0].ID, "best match first")
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, "near", hits[1].ID)
	assert.Nil(t, hits[0].CVEmbedding, "search results omit the embedding")

	hits, err = store.SearchBySimilarity(ctx, []float32{1, 0, 0}, "u1", 0.8, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestInMemoryStore_NearExpiration(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	soon := newCandidate("soon", "u1")
	in3 := time.Now().Add(3 * 24 * time.Hour)
	soon.ExpiresAt = &in3

	later := newCandidate("later", "u1")
	in30 := time.Now().Add(30 * 24 * time.Hour)
	later.ExpiresAt = &in30

	noExpiry := newCandidate("none", "u1")

	for _, c := range []*hiring.Candidate{soon, later, noExpiry} {
		require.NoError(t, store.Create(ctx, c))
	}

	got, err := store.NearExpiration(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "soon", got[0].ID)
}

func TestInMemoryStore_SetExpiration(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newCandidate("c1", "u1")))

	deadline := time.Now().AddDate(0, 0, 30)
	require.NoError(t, store.SetExpiration(ctx, "c1", deadline))

	got, err := store.FindByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, got.ExpiresAt.Equal(deadline))

	require.ErrorIs(t, store.SetExpiration(ctx, "missing", deadline), sentinel.ErrNotFound)
}

func TestInMemoryStore_ListBySkill(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	goDev := newCandidate("go-dev", "u1")
	goDev.ExtractedSkills = []string{"Go", "Postgres"}
	pyDev := newCandidate("py-dev", "u1")
	pyDev.ExtractedSkills = []string{"Python"}
	foreign := newCandidate("foreign", "u2")
	foreign.ExtractedSkills = []string{"Go"}

	for _, c := range []*hiring.Candidate{goDev, pyDev, foreign} {
		require.NoError(t, store.Create(ctx, c))
	}

	got, err := store.ListBySkill(ctx, "u1", "Go")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "go-dev", got[0].ID)

	got, err = store.ListBySkill(ctx, "u1", "Rust")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryStore_Stats(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	now := time.Now()

	fresh := newCandidate("fresh", "u1")

	old := newCandidate("old", "u1")
	old.CreatedAt = now.AddDate(0, -2, 0)

	expiring := newCandidate("expiring", "u1")
	in3 := now.Add(3 * 24 * time.Hour)
	expiring.ExpiresAt = &in3

	foreign := newCandidate("foreign", "u2")

	for _, c := range []*hiring.Candidate{fresh, old, expiring, foreign} {
		require.NoError(t, store.Create(ctx, c))
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats, err := store.Stats(ctx, "u1", monthStart, now.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCandidates)
	assert.Equal(t, 2, stats.CandidatesThisMonth)
	assert.Equal(t, 1, stats.ExpiringSoon)
}
