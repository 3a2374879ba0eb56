package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
	"github.com/kadoshsoftwares/quickcart-api/pkg/session"
)

type stubAPI struct {
	products []models.Product
	user     *models.User
	userErr  error

	updatedCart models.CartItems

	// beforeUserReturn runs between the fetch being issued and its
	// result being applied, simulating work racing an in-flight load.
	beforeUserReturn func()
}

func (s *stubAPI) FetchProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubAPI) FetchUserData(ctx context.Context, token string) (*models.User, error) {
	if s.beforeUserReturn != nil {
		s.beforeUserReturn()
	}
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubAPI) UpdateCart(ctx context.Context, token string, cart models.CartItems) error {
	s.updatedCart = cart
	return nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func TestCartMutations(t *testing.T) {
	t.Run("AddItemCreatesAndIncrements", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)

		s.AddItem("a")
		s.AddItem("a")
		s.AddItem("b")

		assert.Equal(t, models.CartItems{"a": 2, "b": 1}, s.CartItems())
		assert.Equal(t, 3, s.ItemCount())
	})

	t.Run("SetQuantityCreatesEntry", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)

		s.SetQuantity("a", 5)

		assert.Equal(t, models.CartItems{"a": 5}, s.CartItems())
		assert.Equal(t, 5, s.ItemCount())
	})

	t.Run("SetQuantityZeroRemovesEntry", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)

		s.AddItem("a")
		s.SetQuantity("a", 0)

		assert.NotContains(t, s.CartItems(), "a")
		assert.Equal(t, 0, s.ItemCount())
	})

	t.Run("NegativeQuantityRemovesEntry", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)

		s.AddItem("a")
		s.SetQuantity("a", -2)

		assert.NotContains(t, s.CartItems(), "a")
	})

	t.Run("NoZeroQuantityEverStored", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)

		s.AddItem("a")
		s.SetQuantity("b", 3)
		s.SetQuantity("a", 0)
		s.SetQuantity("c", 0)

		for id, qty := range s.CartItems() {
			assert.Greater(t, qty, 0, "entry %s stored with non-positive quantity", id)
		}
	})
}

func TestCartTotal(t *testing.T) {
	idA := bson.NewObjectID()
	idB := bson.NewObjectID()

	api := &stubAPI{
		products: []models.Product{
			{ID: idA, Name: "A", OfferPrice: 10},
			{ID: idB, Name: "B", OfferPrice: 5},
		},
	}

	t.Run("SumsOfferPriceTimesQuantity", func(t *testing.T) {
		s := session.NewState(api, nil)
		require.NoError(t, s.LoadCatalog(context.Background()))

		s.SetQuantity(idA.Hex(), 2)
		s.SetQuantity(idB.Hex(), 1)

		assert.InDelta(t, 25.0, s.CartTotal(), 1e-9)
	})

	t.Run("UnknownProductContributesZero", func(t *testing.T) {
		s := session.NewState(api, nil)
		require.NoError(t, s.LoadCatalog(context.Background()))

		s.SetQuantity(idA.Hex(), 2)
		s.SetQuantity("missing", 100)

		assert.InDelta(t, 20.0, s.CartTotal(), 1e-9)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)
		s.AddItem("a")

		assert.Zero(t, s.CartTotal())
	})
}

func TestLoadCatalog(t *testing.T) {
	api := &stubAPI{products: []models.Product{{Name: "only"}}}
	s := session.NewState(api, nil)

	require.NoError(t, s.LoadCatalog(context.Background()))
	require.Len(t, s.Products(), 1)
	assert.Equal(t, "only", s.Products()[0].Name)

	// repeat load replaces the snapshot
	api.products = nil
	require.NoError(t, s.LoadCatalog(context.Background()))
	assert.Empty(t, s.Products())
}

func TestLoadUserContext(t *testing.T) {
	t.Run("ReplacesCartAndSetsSellerFlag", func(t *testing.T) {
		api := &stubAPI{
			user: &models.User{
				ID:             "user_1",
				CartItems:      models.CartItems{"A": 3},
				PublicMetadata: models.PublicMetadata{Role: "seller"},
			},
		}
		s := session.NewState(api, nil)
		s.AddItem("stale-local-item")

		require.NoError(t, s.LoadUserContext(context.Background(), "token"))

		assert.True(t, s.IsSeller())
		assert.Equal(t, models.CartItems{"A": 3}, s.CartItems())
		require.NotNil(t, s.User())
		assert.Equal(t, "user_1", s.User().ID)
	})

	t.Run("SellerFlagIsOneDirectional", func(t *testing.T) {
		api := &stubAPI{
			user: &models.User{PublicMetadata: models.PublicMetadata{Role: "seller"}},
		}
		s := session.NewState(api, nil)
		require.NoError(t, s.LoadUserContext(context.Background(), "token"))
		require.True(t, s.IsSeller())

		api.user = &models.User{PublicMetadata: models.PublicMetadata{Role: ""}}
		require.NoError(t, s.LoadUserContext(context.Background(), "token"))
		assert.True(t, s.IsSeller())
	})

	t.Run("EmptyTokenRejected", func(t *testing.T) {
		s := session.NewState(&stubAPI{}, nil)
		err := s.LoadUserContext(context.Background(), "")
		assert.ErrorIs(t, err, session.ErrNoIdentity)
	})

	t.Run("FetchFailureNotifiesAndKeepsState", func(t *testing.T) {
		notifier := &recordingNotifier{}
		api := &stubAPI{userErr: errors.New("no session")}
		s := session.NewState(api, notifier)
		s.AddItem("a")

		err := s.LoadUserContext(context.Background(), "token")

		require.Error(t, err)
		assert.Equal(t, []string{"no session"}, notifier.messages)
		assert.Equal(t, models.CartItems{"a": 1}, s.CartItems())
	})

	t.Run("StaleFetchDiscarded", func(t *testing.T) {
		api := &stubAPI{
			user: &models.User{CartItems: models.CartItems{"remote": 9}},
		}
		s := session.NewState(api, nil)

		// a local mutation lands while the fetch is in flight
		api.beforeUserReturn = func() { s.AddItem("local") }

		require.NoError(t, s.LoadUserContext(context.Background(), "token"))

		assert.Equal(t, models.CartItems{"local": 1}, s.CartItems(),
			"stale remote cart must not clobber newer local edits")
		require.NotNil(t, s.User(), "user data still applies")
	})

	t.Run("SanitizesRemoteCart", func(t *testing.T) {
		api := &stubAPI{
			user: &models.User{CartItems: models.CartItems{"a": 2, "b": 0}},
		}
		s := session.NewState(api, nil)

		require.NoError(t, s.LoadUserContext(context.Background(), "token"))
		assert.Equal(t, models.CartItems{"a": 2}, s.CartItems())
	})
}

func TestSyncCart(t *testing.T) {
	api := &stubAPI{}
	s := session.NewState(api, nil)
	s.AddItem("a")
	s.AddItem("a")

	require.NoError(t, s.SyncCart(context.Background(), "token"))
	assert.Equal(t, models.CartItems{"a": 2}, api.updatedCart)

	assert.ErrorIs(t, s.SyncCart(context.Background(), ""), session.ErrNoIdentity)
}

func TestSubscribe(t *testing.T) {
	s := session.NewState(&stubAPI{}, nil)
	events := s.Subscribe()

	s.AddItem("a")

	select {
	case event := <-events:
		assert.Equal(t, session.EventCart, event)
	default:
		t.Fatal("expected a cart event after AddItem")
	}
}
