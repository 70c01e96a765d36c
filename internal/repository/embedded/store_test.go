package embedded

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"notebook/internal/domain"
	"notebook/internal/domain/models"
	modelsDoc "notebook/internal/domain/models/docsystem"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	store   *Store
	tx      *TransactionManager
	users   *UserRepository
	folders *FolderRepository
	docs    *DocumentRepository
	blocks  *BlockRepository
}

func openRepos(t *testing.T, opts Options) *repos {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	store, err := Open(opts)
	require.NoError(t, err)
	return &repos{
		store:   store,
		tx:      &TransactionManager{store: store},
		users:   &UserRepository{store: store},
		folders: &FolderRepository{store: store},
		docs:    &DocumentRepository{store: store},
		blocks:  &BlockRepository{store: store},
	}
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	r := openRepos(t, Options{InMemory: true})
	t.Cleanup(func() { _ = r.store.Close() })
	return r
}

func (r *repos) user(t *testing.T, name string) int64 {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, r.users.Create(context.Background(), u))
	return u.ID
}

func (r *repos) folder(t *testing.T, owner int64, name string, parent *int64) *modelsDoc.Folder {
	t.Helper()
	f := &modelsDoc.Folder{OwnerID: owner, Name: name, ParentFolderID: parent}
	require.NoError(t, r.folders.Create(context.Background(), f))
	return f
}

func (r *repos) doc(t *testing.T, owner int64, title string, folder *int64) *modelsDoc.Document {
	t.Helper()
	d := &modelsDoc.Document{OwnerID: owner, Title: title, FolderID: folder}
	require.NoError(t, r.docs.Create(context.Background(), d))
	return d
}

func (r *repos) block(t *testing.T, docID int64, index int) *modelsDoc.Block {
	t.Helper()
	b := &modelsDoc.Block{DocumentID: docID, BlockType: modelsDoc.BlockTypeParagraph, OrderIndex: index}
	require.NoError(t, r.blocks.Create(context.Background(), b))
	return b
}

func TestCreateAssignsIDsAndTimestamps(t *testing.T) {
	r := newRepos(t)
	owner := r.user(t, "alice")

	first := r.folder(t, owner, "A", nil)
	second := r.folder(t, owner, "B", nil)

	assert.Equal(t, int64(1), owner)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, time.UTC, first.CreatedAt.Location())

	got, err := r.folders.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
	assert.Equal(t, first.OwnerID, got.OwnerID)
	assert.Nil(t, got.ParentFolderID)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
}

func TestGetMissingIsNotFound(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.folders.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.docs.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.blocks.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.blocks.Delete(ctx, 42), domain.ErrNotFound)
}

func TestFolderListsAndAncestors(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	bob := r.user(t, "bob")

	work := r.folder(t, alice, "Work", nil)
	archive := r.folder(t, alice, "Archive", nil)
	q4 := r.folder(t, alice, "Q4", &work.ID)
	reports := r.folder(t, alice, "Reports", &q4.ID)
	r.folder(t, bob, "Bob", nil)

	roots, err := r.folders.ListChildren(ctx, alice, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "Work"}, folderNames(roots))

	children, err := r.folders.ListChildren(ctx, alice, &work.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q4"}, folderNames(children))

	all, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	tests := []struct {
		name     string
		id       int64
		maxDepth int
		want     []int64
	}{
		{"root folder", archive.ID, 10, []int64{}},
		{"nested", reports.ID, 10, []int64{q4.ID, work.ID}},
		{"bounded", reports.ID, 1, []int64{q4.ID}},
		{"missing start", 9999, 10, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.folders.GetAncestorIDs(ctx, tt.id, tt.maxDepth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFolderUpdateMovesIndex(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")

	work := r.folder(t, alice, "Work", nil)
	notes := r.folder(t, alice, "Notes", nil)

	notes.ParentFolderID = &work.ID
	notes.Name = "Meeting notes"
	require.NoError(t, r.folders.Update(ctx, notes))

	roots, err := r.folders.ListChildren(ctx, alice, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, folderNames(roots))

	children, err := r.folders.ListChildren(ctx, alice, &work.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Meeting notes"}, folderNames(children))
}

func TestFolderDeleteCascade(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")

	work := r.folder(t, alice, "Work", nil)
	q4 := r.folder(t, alice, "Q4", &work.ID)
	deep := r.folder(t, alice, "Deep", &q4.ID)
	keep := r.folder(t, alice, "Keep", nil)

	inWork := r.doc(t, alice, "In work", &work.ID)
	inDeep := r.doc(t, alice, "In deep", &deep.ID)
	inKeep := r.doc(t, alice, "In keep", &keep.ID)
	b := r.block(t, inDeep.ID, 0)

	require.NoError(t, r.folders.Delete(ctx, work.ID))

	for _, id := range []int64{work.ID, q4.ID, deep.ID} {
		_, err := r.folders.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}

	// Documents survive at the root level with their blocks
	for _, id := range []int64{inWork.ID, inDeep.ID} {
		d, err := r.docs.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, d.FolderID)
	}
	_, err := r.blocks.GetByID(ctx, b.ID)
	require.NoError(t, err)

	rootDocs, err := r.docs.ListByFolder(ctx, alice, nil)
	require.NoError(t, err)
	assert.Len(t, rootDocs, 2)

	kept, err := r.docs.GetByID(ctx, inKeep.ID)
	require.NoError(t, err)
	assert.Equal(t, &keep.ID, kept.FolderID)

	all, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep"}, folderNames(all))
}

func TestDocumentDeleteRemovesBlocks(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")

	doc := r.doc(t, alice, "Doc", nil)
	other := r.doc(t, alice, "Other", nil)
	b0 := r.block(t, doc.ID, 0)
	b1 := r.block(t, doc.ID, 1)
	survivor := r.block(t, other.ID, 0)

	require.NoError(t, r.docs.Delete(ctx, doc.ID))

	for _, id := range []int64{b0.ID, b1.ID} {
		_, err := r.blocks.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	_, err := r.blocks.GetByID(ctx, survivor.ID)
	require.NoError(t, err)

	blocks, err := r.blocks.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	docs, err := r.docs.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestUserDeleteCascade(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	bob := r.user(t, "bob")

	parent := r.folder(t, alice, "Parent", nil)
	r.folder(t, alice, "Child", &parent.ID)
	doc := r.doc(t, alice, "Doc", &parent.ID)
	blk := r.block(t, doc.ID, 0)
	bobsDoc := r.doc(t, bob, "Bob's", nil)

	require.NoError(t, r.users.Delete(ctx, alice))

	folders, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, folders)
	docs, err := r.docs.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, docs)
	_, err = r.blocks.GetByID(ctx, blk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.docs.GetByID(ctx, bobsDoc.ID)
	require.NoError(t, err)
}

func TestBlockOrdering(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	doc := r.doc(t, alice, "Doc", nil)

	_, found, err := r.blocks.MaxOrderIndex(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, found)

	b0 := r.block(t, doc.ID, 4)
	b1 := r.block(t, doc.ID, 2)
	b2 := r.block(t, doc.ID, 2)

	maxIndex, found, err := r.blocks.MaxOrderIndex(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, maxIndex)

	blocks, err := r.blocks.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b1.ID, b2.ID, b0.ID}, ids(blocks))

	err = r.blocks.UpdateOrderIndexes(ctx, []modelsDoc.Placement{
		{BlockID: b0.ID, OrderIndex: 0},
		{BlockID: b2.ID, OrderIndex: 1},
	})
	require.NoError(t, err)

	blocks, err = r.blocks.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b0.ID, b2.ID, b1.ID}, ids(blocks))

	got, err := r.blocks.GetByIDs(ctx, []int64{b0.ID, 9999, b1.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, b0.ID)
	assert.NotContains(t, got, int64(9999))
}

func TestExecTxRollsBack(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	doc := r.doc(t, alice, "Doc", nil)
	b := r.block(t, doc.ID, 0)

	boom := errors.New("boom")
	err := r.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := r.blocks.UpdateOrderIndexes(ctx, []modelsDoc.Placement{{BlockID: b.ID, OrderIndex: 7}}); err != nil {
			return err
		}
		if err := r.folders.Create(ctx, &modelsDoc.Folder{OwnerID: alice, Name: "Inside"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := r.blocks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.OrderIndex)

	folders, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestUpdateOrderIndexesMissingBlockWritesNothing(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	doc := r.doc(t, alice, "Doc", nil)
	b := r.block(t, doc.ID, 0)

	err := r.tx.ExecTx(ctx, func(ctx context.Context) error {
		return r.blocks.UpdateOrderIndexes(ctx, []modelsDoc.Placement{
			{BlockID: b.ID, OrderIndex: 3},
			{BlockID: 4242, OrderIndex: 0},
		})
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := r.blocks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.OrderIndex)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	r := openRepos(t, Options{Dir: dir})
	alice := r.user(t, "alice")
	folder := r.folder(t, alice, "Work", nil)
	doc := r.doc(t, alice, "Plan", &folder.ID)
	require.NoError(t, r.store.Close())

	r = openRepos(t, Options{Dir: dir})
	t.Cleanup(func() { _ = r.store.Close() })

	got, err := r.docs.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan", got.Title)
	assert.Equal(t, &folder.ID, got.FolderID)
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))

	// Ids are never reused after a restart
	next := r.folder(t, alice, "Later", nil)
	assert.Greater(t, next.ID, folder.ID)
}

func folderNames(folders []modelsDoc.Folder) []string {
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Name
	}
	return names
}

func ids(blocks []modelsDoc.Block) []int64 {
	out := make([]int64, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}

func TestClearDataKeepsSequences(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	folder := r.folder(t, alice, "Work", nil)

	require.NoError(t, r.store.ClearData())

	_, err := r.users.GetByID(ctx, alice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	folders, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, folders)

	bob := r.user(t, "bob")
	assert.Greater(t, bob, alice)
	assert.Greater(t, r.folder(t, bob, "New", nil).ID, folder.ID)
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	missing := int64(4242)

	tests := []struct {
		name   string
		create func() error
	}{
		{"folder owner", func() error {
			return r.folders.Create(ctx, &modelsDoc.Folder{OwnerID: missing, Name: "X"})
		}},
		{"folder parent", func() error {
			return r.folders.Create(ctx, &modelsDoc.Folder{OwnerID: alice, Name: "X", ParentFolderID: &missing})
		}},
		{"document owner", func() error {
			return r.docs.Create(ctx, &modelsDoc.Document{OwnerID: missing, Title: "X"})
		}},
		{"document folder", func() error {
			return r.docs.Create(ctx, &modelsDoc.Document{OwnerID: alice, Title: "X", FolderID: &missing})
		}},
		{"block document", func() error {
			return r.blocks.Create(ctx, &modelsDoc.Block{DocumentID: missing, BlockType: modelsDoc.BlockTypeParagraph})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.create(), domain.ErrReferenceInvalid)
		})
	}

	folders, err := r.folders.ListByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

// Each case starts a transaction, lets another write commit in between and
// then finishes. Exactly one side must lose so no record is left pointing
// at a deleted parent.
func TestCascadeConflictsWithConcurrentReferences(t *testing.T) {
	tests := []struct {
		name  string
		run   func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error
		check func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder)
	}{
		{
			name: "document created in a folder being deleted",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					_, err := r.folders.GetByID(ctx, work.ID)
					require.NoError(t, err)
					r.doc(t, alice, "Notes", &work.ID)
					return r.folders.Delete(ctx, work.ID)
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				_, err := r.folders.GetByID(context.Background(), work.ID)
				require.NoError(t, err)
				docs, err := r.docs.ListByFolder(context.Background(), alice, &work.ID)
				require.NoError(t, err)
				require.Len(t, docs, 1)
				assert.Equal(t, "Notes", docs[0].Title)
			},
		},
		{
			name: "folder deleted under a document being created",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					err := r.docs.Create(ctx, &modelsDoc.Document{OwnerID: alice, Title: "Notes", FolderID: &work.ID})
					require.NoError(t, err)
					require.NoError(t, r.folders.Delete(context.Background(), work.ID))
					return nil
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				docs, err := r.docs.ListByOwner(context.Background(), alice)
				require.NoError(t, err)
				assert.Empty(t, docs)
			},
		},
		{
			name: "folder moved under a folder being deleted",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				personal := r.folder(t, alice, "Personal", nil)
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					_, err := r.folders.GetByID(ctx, work.ID)
					require.NoError(t, err)
					personal.ParentFolderID = &work.ID
					require.NoError(t, r.folders.Update(context.Background(), personal))
					return r.folders.Delete(ctx, work.ID)
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				children, err := r.folders.ListChildren(context.Background(), alice, &work.ID)
				require.NoError(t, err)
				require.Len(t, children, 1)
				assert.Equal(t, "Personal", children[0].Name)
			},
		},
		{
			name: "document moved into a folder being deleted",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				loose := r.doc(t, alice, "Loose", nil)
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					_, err := r.folders.GetByID(ctx, work.ID)
					require.NoError(t, err)
					loose.FolderID = &work.ID
					require.NoError(t, r.docs.Update(context.Background(), loose))
					return r.folders.Delete(ctx, work.ID)
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				docs, err := r.docs.ListByFolder(context.Background(), alice, &work.ID)
				require.NoError(t, err)
				require.Len(t, docs, 1)
				assert.Equal(t, "Loose", docs[0].Title)
			},
		},
		{
			name: "folder created by a user being deleted",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					_, err := r.users.GetByID(ctx, alice)
					require.NoError(t, err)
					r.folder(t, alice, "Late", nil)
					return r.users.Delete(ctx, alice)
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				folders, err := r.folders.ListByOwner(context.Background(), alice)
				require.NoError(t, err)
				assert.Len(t, folders, 2)
			},
		},
		{
			name: "block created in a document being deleted",
			run: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) error {
				doc := r.doc(t, alice, "Notes", nil)
				return r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
					_, err := r.docs.GetByID(ctx, doc.ID)
					require.NoError(t, err)
					r.block(t, doc.ID, 0)
					return r.docs.Delete(ctx, doc.ID)
				})
			},
			check: func(t *testing.T, r *repos, alice int64, work *modelsDoc.Folder) {
				docs, err := r.docs.ListByOwner(context.Background(), alice)
				require.NoError(t, err)
				require.Len(t, docs, 1)
				blocks, err := r.blocks.ListByDocument(context.Background(), docs[0].ID)
				require.NoError(t, err)
				assert.Len(t, blocks, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepos(t)
			alice := r.user(t, "alice")
			work := r.folder(t, alice, "Work", nil)

			err := tt.run(t, r, alice, work)
			assert.ErrorIs(t, err, domain.ErrStorage)
			assert.ErrorIs(t, err, badger.ErrConflict)
			tt.check(t, r, alice, work)
		})
	}
}

func TestConcurrentInsertsUnderOneFolderCommit(t *testing.T) {
	r := newRepos(t)
	alice := r.user(t, "alice")
	work := r.folder(t, alice, "Work", nil)

	err := r.tx.ExecTx(context.Background(), func(ctx context.Context) error {
		err := r.docs.Create(ctx, &modelsDoc.Document{OwnerID: alice, Title: "First", FolderID: &work.ID})
		require.NoError(t, err)
		r.doc(t, alice, "Second", &work.ID)
		return nil
	})
	require.NoError(t, err)

	docs, err := r.docs.ListByFolder(context.Background(), alice, &work.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestUserUniqueIndex(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	bob := r.user(t, "bob")

	tests := []struct {
		name      string
		run       func() error
		wantField string
	}{
		{"create with taken username", func() error {
			return r.users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
		}, "username"},
		{"create with taken email", func() error {
			return r.users.Create(ctx, &models.User{Username: "carol", Email: "bob@example.com"})
		}, "email"},
		{"rename onto taken username", func() error {
			return r.users.Update(ctx, &models.User{ID: bob, Username: "alice", Email: "bob@example.com"})
		}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.ErrorIs(t, err, domain.ErrConflict)
			var conflict *domain.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.wantField, conflict.Field)
		})
	}

	users, err := r.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)

	t.Run("rename frees the old value", func(t *testing.T) {
		require.NoError(t, r.users.Update(ctx, &models.User{ID: alice, Username: "alice_w", Email: "alice.w@example.com"}))
		r.user(t, "alice")
	})

	t.Run("delete frees both values", func(t *testing.T) {
		require.NoError(t, r.users.Delete(ctx, bob))
		r.user(t, "bob")
	})

	t.Run("concurrent claims of one username conflict", func(t *testing.T) {
		err := r.tx.ExecTx(ctx, func(ctx context.Context) error {
			err := r.users.Create(ctx, &models.User{Username: "dave", Email: "dave@example.com"})
			require.NoError(t, err)
			r.user(t, "dave")
			return nil
		})
		assert.ErrorIs(t, err, badger.ErrConflict)
	})
}
