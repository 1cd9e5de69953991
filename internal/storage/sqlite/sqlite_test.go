package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage"
)

// fakeClock advances by one second on every read.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()
	user, err := models.NewUser(username, username+"123")
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func mustBucketlist(t *testing.T, store *SQLiteStore, name string, owner *int64) *models.Bucketlist {
	t.Helper()
	bucketlist, err := models.NewBucketlist(name, owner)
	require.NoError(t, err)
	require.NoError(t, store.CreateBucketlist(context.Background(), bucketlist))
	return bucketlist
}

func mustItem(t *testing.T, store *SQLiteStore, name string, bucketlistID int64) *models.Item {
	t.Helper()
	item, err := models.NewItem(name, bucketlistID, "")
	require.NoError(t, err)
	require.NoError(t, store.CreateItem(context.Background(), item))
	return item
}

func TestNew(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "bucketlist.db")
		store, err := New(dbPath)
		require.NoError(t, err)
		defer store.Close()

		assert.FileExists(t, dbPath)
	})

	t.Run("in-memory database", func(t *testing.T) {
		store, err := New(MemoryPath)
		require.NoError(t, err)
		defer store.Close()

		user := mustUser(t, store, "clement")
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("reopening keeps data", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")
		store, err := New(dbPath)
		require.NoError(t, err)
		mustUser(t, store, "clement")
		require.NoError(t, store.Close())

		store, err = New(dbPath)
		require.NoError(t, err)
		defer store.Close()

		user, err := store.GetUserByUsername(context.Background(), "clement")
		require.NoError(t, err)
		require.NotNil(t, user)
	})
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("CreateUser assigns ID and timestamps", func(t *testing.T) {
		user, err := models.NewUser("Clement", "clement123")
		require.NoError(t, err)
		require.NoError(t, store.CreateUser(ctx, user))

		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "clement", user.Username)
		assert.False(t, user.DateCreated.IsZero())
		assert.Equal(t, user.DateCreated, user.DateModified)

		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "clement", got.Username)
		assert.True(t, got.VerifyPassword("clement123"))
		assert.True(t, got.DateCreated.Equal(user.DateCreated))
	})

	t.Run("username lookup ignores case", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "CLEMENT")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "clement", got.Username)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		user, err := models.NewUser("clement", "other123")
		require.NoError(t, err)
		err = store.CreateUser(ctx, user)
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ListUsers", func(t *testing.T) {
		mustUser(t, store, "imani")
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "<User 'clement'>", users[0].String())
		assert.Equal(t, "<User 'imani'>", users[1].String())
	})

	t.Run("UpdateUser changes password", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "imani")
		require.NoError(t, err)
		require.NoError(t, user.SetPassword("changed1"))

		ok, err := store.UpdateUser(ctx, user)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.VerifyPassword("changed1"))
		assert.False(t, got.DateModified.Before(got.DateCreated))
	})

	t.Run("UpdateUser of missing user", func(t *testing.T) {
		ok, err := store.UpdateUser(ctx, &models.User{ID: 999, Username: "ghost", PasswordHash: "x"})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeleteUser of missing user", func(t *testing.T) {
		ok, err := store.DeleteUser(ctx, 999)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBucketlists(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newTestStore(t, WithClock(clock.Now))

	t.Run("create ownerless bucketlist", func(t *testing.T) {
		bucketlist := mustBucketlist(t, store, "Cook", nil)

		assert.Equal(t, int64(1), bucketlist.ID)
		assert.Nil(t, bucketlist.CreatedBy)
		assert.Equal(t, 2026, bucketlist.DateCreated.Year())

		got, err := store.GetBucketlist(ctx, bucketlist.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Cook", got.Name)
		assert.Nil(t, got.CreatedBy)

		items, err := store.ListItems(ctx, storage.ItemFilter{BucketlistID: got.ID})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("store rejects invalid bucketlist", func(t *testing.T) {
		err := store.CreateBucketlist(ctx, &models.Bucketlist{})
		assert.ErrorIs(t, err, models.ErrNameRequired)
	})

	t.Run("update advances date_modified", func(t *testing.T) {
		bucketlist := mustBucketlist(t, store, "Travel", nil)
		created := bucketlist.DateCreated

		bucketlist.Name = "Traveling"
		ok, err := store.UpdateBucketlist(ctx, bucketlist)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := store.GetBucketlist(ctx, bucketlist.ID)
		require.NoError(t, err)
		assert.Equal(t, "Traveling", got.Name)
		assert.True(t, got.DateCreated.Equal(created))
		assert.True(t, got.DateModified.After(got.DateCreated))
	})

	t.Run("update of missing bucketlist", func(t *testing.T) {
		ok, err := store.UpdateBucketlist(ctx, &models.Bucketlist{ID: 999, Name: "Ghost"})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("name is unique per owner", func(t *testing.T) {
		owner := mustUser(t, store, "clement")
		mustBucketlist(t, store, "Read", &owner.ID)

		dup, err := models.NewBucketlist("Read", &owner.ID)
		require.NoError(t, err)
		assert.ErrorIs(t, store.CreateBucketlist(ctx, dup), storage.ErrConflict)

		other := mustUser(t, store, "imani")
		mustBucketlist(t, store, "Read", &other.ID)
	})

	t.Run("unknown owner is an invalid reference", func(t *testing.T) {
		missing := int64(999)
		bucketlist, err := models.NewBucketlist("Orphan", &missing)
		require.NoError(t, err)
		assert.ErrorIs(t, store.CreateBucketlist(ctx, bucketlist), storage.ErrInvalidReference)
	})

	t.Run("ListBucketlists filters", func(t *testing.T) {
		clement, err := store.GetUserByUsername(ctx, "clement")
		require.NoError(t, err)

		owned, err := store.ListBucketlists(ctx, storage.BucketlistFilter{CreatedBy: &clement.ID})
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, "Read", owned[0].Name)

		named, err := store.ListBucketlists(ctx, storage.BucketlistFilter{Name: "Read"})
		require.NoError(t, err)
		assert.Len(t, named, 2)

		ownerless, err := store.ListBucketlists(ctx, storage.BucketlistFilter{Ownerless: true})
		require.NoError(t, err)
		assert.Len(t, ownerless, 2)

		all, err := store.ListBucketlists(ctx, storage.BucketlistFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}

func TestItems(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	bucketlist := mustBucketlist(t, store, "Cook", nil)

	t.Run("create item with defaults", func(t *testing.T) {
		item, err := models.NewItem("Cook lunch", bucketlist.ID, "Cooking Ugali omena")
		require.NoError(t, err)
		require.NoError(t, store.CreateItem(ctx, item))

		got, err := store.FindItem(ctx, storage.ItemFilter{Name: "Cook lunch", BucketlistID: bucketlist.ID})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, "Cooking Ugali omena", got.Description)
		assert.False(t, got.Done)
		assert.False(t, got.DateModified.Before(got.DateCreated))
	})

	t.Run("edit item", func(t *testing.T) {
		item, err := store.FindItem(ctx, storage.ItemFilter{Name: "Cook lunch", BucketlistID: bucketlist.ID})
		require.NoError(t, err)
		require.NotNil(t, item)

		item.Description = "Cooking Ugali fish"
		item.Done = true
		ok, err := store.UpdateItem(ctx, item)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cooking Ugali fish", got.Description)
		assert.True(t, got.Done)

		done := true
		doneItems, err := store.ListItems(ctx, storage.ItemFilter{Done: &done})
		require.NoError(t, err)
		assert.Len(t, doneItems, 1)
	})

	t.Run("item needs an existing bucketlist", func(t *testing.T) {
		item, err := models.NewItem("Stray", 999, "")
		require.NoError(t, err)
		assert.ErrorIs(t, store.CreateItem(ctx, item), storage.ErrInvalidReference)
	})

	t.Run("store rejects invalid item", func(t *testing.T) {
		err := store.CreateItem(ctx, &models.Item{Name: "No list"})
		assert.ErrorIs(t, err, models.ErrBucketlistRequired)
	})

	t.Run("delete item", func(t *testing.T) {
		item := mustItem(t, store, "Bake bread", bucketlist.ID)

		ok, err := store.DeleteItem(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.FindItem(ctx, storage.ItemFilter{Name: "Bake bread", BucketlistID: bucketlist.ID})
		require.NoError(t, err)
		assert.Nil(t, got)

		ok, err = store.DeleteItem(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCascadeDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a bucketlist removes its items", func(t *testing.T) {
		store := newTestStore(t)
		cook := mustBucketlist(t, store, "Cook", nil)
		keep := mustBucketlist(t, store, "Keep", nil)
		mustItem(t, store, "Cook lunch", cook.ID)
		mustItem(t, store, "Cook dinner", cook.ID)
		mustItem(t, store, "Untouched", keep.ID)

		ok, err := store.DeleteBucketlist(ctx, cook.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.GetBucketlist(ctx, cook.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		items, err := store.ListItems(ctx, storage.ItemFilter{BucketlistID: cook.ID})
		require.NoError(t, err)
		assert.Empty(t, items)

		lunch, err := store.FindItem(ctx, storage.ItemFilter{Name: "Cook lunch", BucketlistID: cook.ID})
		require.NoError(t, err)
		assert.Nil(t, lunch)

		remaining, err := store.ListItems(ctx, storage.ItemFilter{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "Untouched", remaining[0].Name)
	})

	t.Run("deleting a user removes bucketlists and items", func(t *testing.T) {
		store := newTestStore(t)
		clement := mustUser(t, store, "clement")
		imani := mustUser(t, store, "imani")

		travel := mustBucketlist(t, store, "Travel", &clement.ID)
		read := mustBucketlist(t, store, "Read", &clement.ID)
		other := mustBucketlist(t, store, "Travel", &imani.ID)
		mustItem(t, store, "Visit Lamu", travel.ID)
		mustItem(t, store, "Dune", read.ID)
		mustItem(t, store, "Visit Kigali", other.ID)

		ok, err := store.DeleteUser(ctx, clement.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		user, err := store.GetUserByID(ctx, clement.ID)
		require.NoError(t, err)
		assert.Nil(t, user)

		owned, err := store.ListBucketlists(ctx, storage.BucketlistFilter{CreatedBy: &clement.ID})
		require.NoError(t, err)
		assert.Empty(t, owned)

		for _, id := range []int64{travel.ID, read.ID} {
			items, err := store.ListItems(ctx, storage.ItemFilter{BucketlistID: id})
			require.NoError(t, err)
			assert.Empty(t, items)
		}

		items, err := store.ListItems(ctx, storage.ItemFilter{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Visit Kigali", items[0].Name)
	})
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	owner := mustUser(t, store, "clement")
	first := mustBucketlist(t, store, "Read", &owner.ID)
	second := mustBucketlist(t, store, "Write", &owner.ID)

	// Renaming onto an existing (name, owner) pair must not change anything.
	second.Name = "Read"
	_, err := store.UpdateBucketlist(ctx, second)
	assert.ErrorIs(t, err, storage.ErrConflict)

	got, err := store.GetBucketlist(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write", got.Name)

	got, err = store.GetBucketlist(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Name)
}

func TestFailedUpdateLeavesCallerTimestamps(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newTestStore(t, WithClock(clock.Now))

	t.Run("bucketlist", func(t *testing.T) {
		owner := mustUser(t, store, "clement")
		mustBucketlist(t, store, "Read", &owner.ID)
		second := mustBucketlist(t, store, "Write", &owner.ID)
		before := second.DateModified

		second.Name = "Read"
		_, err := store.UpdateBucketlist(ctx, second)
		require.ErrorIs(t, err, storage.ErrConflict)
		assert.Equal(t, before, second.DateModified)
	})

	t.Run("item", func(t *testing.T) {
		list := mustBucketlist(t, store, "Travel", nil)
		item := mustItem(t, store, "Visit Kyoto", list.ID)
		before := item.DateModified

		item.BucketlistID = list.ID + 1000
		_, err := store.UpdateItem(ctx, item)
		require.ErrorIs(t, err, storage.ErrInvalidReference)
		assert.Equal(t, before, item.DateModified)
	})

	t.Run("user", func(t *testing.T) {
		mustUser(t, store, "imani")
		other := mustUser(t, store, "amani")
		before := other.DateModified

		other.Username = "Imani"
		_, err := store.UpdateUser(ctx, other)
		require.ErrorIs(t, err, storage.ErrConflict)
		assert.Equal(t, before, other.DateModified)
		assert.Equal(t, "Imani", other.Username)
	})

	t.Run("successful update stamps caller", func(t *testing.T) {
		list := mustBucketlist(t, store, "Cook", nil)
		before := list.DateModified

		list.Name = "Cook more"
		ok, err := store.UpdateBucketlist(ctx, list)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, list.DateModified.After(before))
	})
}
