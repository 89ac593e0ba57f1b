package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(db, filepath.Join("..", "..", "migrations")))
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleDocument(id, text string) *model.Document {
	return &model.Document{
		ID:          id,
		Text:        text,
		SourceType:  model.SourceTypeRole,
		Format:      "text",
		Metadata:    map[string]string{"team": "data"},
		ContentHash: "hash-" + id,
		Ctime:       time.Now().UnixMilli(),
	}
}

func TestDocumentRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	docs := NewDocumentRepo(db)

	doc := sampleDocument("d1", "role charter")
	require.NoError(t, docs.Save(context.Background(), doc))

	got, err := docs.Get(context.Background(), "d1")
	require.NoError(t, err)
	require.Equal(t, doc.Text, got.Text)
	require.Equal(t, model.SourceTypeRole, got.SourceType)
	require.Equal(t, map[string]string{"team": "data"}, got.Metadata)

	byHash, err := docs.GetByHash(context.Background(), "hash-d1")
	require.NoError(t, err)
	require.Equal(t, "d1", byHash.ID)

	_, err = docs.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, docs.Delete(context.Background(), "d1"))
	_, err = docs.Get(context.Background(), "d1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestDocumentRepoListByIDs(t *testing.T) {
	db := newTestDB(t)
	docs := NewDocumentRepo(db)
	require.NoError(t, docs.Save(context.Background(), sampleDocument("d1", "one")))
	require.NoError(t, docs.Save(context.Background(), sampleDocument("d2", "two")))

	got, err := docs.ListByIDs(context.Background(), []string{"d1", "d2", "d3"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = docs.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestEmbeddingRepoSaveAndList(t *testing.T) {
	db := newTestDB(t)
	embeddings := NewEmbeddingRepo(db)

	emb := &model.ChunkEmbedding{
		ChunkID:    "d1:0",
		DocumentID: "d1",
		Position:   0,
		Text:       "chunk text",
		Vector:     []float32{0.1, 0.2, 0.3},
		Version:    "embed-v1",
	}
	require.NoError(t, embeddings.Save(context.Background(), emb))
	// Replace semantics: saving the same chunk id again must not duplicate.
	require.NoError(t, embeddings.Save(context.Background(), emb))

	all, err := embeddings.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, emb.Vector, all[0].Vector)

	byChunk, err := embeddings.ListByChunkIDs(context.Background(), []string{"d1:0"})
	require.NoError(t, err)
	require.Len(t, byChunk, 1)
	require.Equal(t, "chunk text", byChunk[0].Text)

	require.NoError(t, embeddings.DeleteByDocument(context.Background(), "d1"))
	all, err = embeddings.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestEmbeddingRepoListStaleDocuments(t *testing.T) {
	db := newTestDB(t)
	docs := NewDocumentRepo(db)
	embeddings := NewEmbeddingRepo(db)

	require.NoError(t, docs.Save(context.Background(), sampleDocument("fresh", "fresh text")))
	require.NoError(t, docs.Save(context.Background(), sampleDocument("stale", "stale text")))
	require.NoError(t, docs.Save(context.Background(), sampleDocument("bare", "never embedded")))

	require.NoError(t, embeddings.Save(context.Background(), &model.ChunkEmbedding{
		ChunkID: "fresh:0", DocumentID: "fresh", Text: "x", Vector: []float32{1}, Version: "embed-v2",
	}))
	require.NoError(t, embeddings.Save(context.Background(), &model.ChunkEmbedding{
		ChunkID: "stale:0", DocumentID: "stale", Text: "x", Vector: []float32{1}, Version: "embed-v1",
	}))

	found, err := embeddings.ListStaleDocuments(context.Background(), "embed-v2", 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(found))
	for _, doc := range found {
		ids = append(ids, doc.ID)
	}
	require.ElementsMatch(t, []string{"stale", "bare"}, ids)
}

func TestRoleRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleRepo(db)

	role := &model.RoleRequirement{
		RoleID:         "r1",
		Title:          "Data Engineer",
		Department:     "Platform",
		RequiredSkills: model.SkillSet{"sql": 3, "python": 2},
	}
	require.NoError(t, roles.Save(context.Background(), role))

	got, err := roles.Get(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, role.RequiredSkills, got.RequiredSkills)

	_, err = roles.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrUnknownRole)

	role.RequiredSkills["go"] = 2
	require.NoError(t, roles.Save(context.Background(), role))
	list, err := roles.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].RequiredSkills, 3)
}

func TestMentorRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	mentors := NewMentorRepo(db)

	mentor := &model.MentorProfile{
		MentorID:     "m1",
		Name:         "Alex",
		CurrentRole:  "Staff Engineer",
		Expertise:    model.SkillSet{"go": 4},
		Domains:      []string{"infra"},
		Availability: true,
	}
	require.NoError(t, mentors.Save(context.Background(), mentor))

	got, err := mentors.Get(context.Background(), "m1")
	require.NoError(t, err)
	require.True(t, got.Availability)
	require.Equal(t, []string{"infra"}, got.Domains)

	_, err = mentors.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErr.ErrUnknownMentor)
}

func TestUserRepoConflictOnDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)

	user := &model.User{
		ID:           "u1",
		Email:        "a@example.com",
		PasswordHash: "hash",
		Role:         "user",
		Ctime:        time.Now().UnixMilli(),
	}
	require.NoError(t, users.Create(context.Background(), user))

	dup := *user
	dup.ID = "u2"
	require.ErrorIs(t, users.Create(context.Background(), &dup), appErr.ErrConflict)

	got, err := users.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)
}

func TestUserSkillRepoReplace(t *testing.T) {
	db := newTestDB(t)
	skills := NewUserSkillRepo(db)

	require.NoError(t, skills.Replace(context.Background(), "u1", model.SkillSet{"go": 3, "sql": 2}))
	got, err := skills.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, model.SkillSet{"go": 3, "sql": 2}, got)

	require.NoError(t, skills.Replace(context.Background(), "u1", model.SkillSet{"python": 1}))
	got, err = skills.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, model.SkillSet{"python": 1}, got)

	require.NoError(t, skills.Replace(context.Background(), "u1", nil))
	got, err = skills.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}
