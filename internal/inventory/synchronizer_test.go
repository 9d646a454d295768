package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/pkg/logger"
)

// MockRemote is a mock implementation of Remote.
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockRemote) Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var errRemote = &OpError{Op: "test", Kind: KindStatus, StatusCode: 500}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: "3", Name: "Lamp", Description: "Desk lamp", Category: "Lighting", Price: 25, Image: "https://img/3.png"},
		{ID: "1", Name: "Chair", Description: "Office chair", Category: "Furniture", Price: 149.99, Image: "https://img/1.png"},
		{ID: "2", Name: "Mug", Description: "Ceramic", Category: "Kitchen", Price: 9.5, Image: "not-a-url"},
	}
}

// loaded returns a synchronizer that already mirrors seedProducts
func loaded(t *testing.T) (*Synchronizer, *MockRemote) {
	t.Helper()

	remote := new(MockRemote)
	remote.On("List", mock.Anything).Return(seedProducts(), nil).Once()

	s := NewSynchronizer(remote, logger.Discard())
	require.NoError(t, s.Load(context.Background()))
	return s, remote
}

func TestSynchronizer_Load(t *testing.T) {
	t.Run("mirrors remote collection in order", func(t *testing.T) {
		s, remote := loaded(t)

		assert.Equal(t, seedProducts(), s.Products())
		assert.False(t, s.Loading())
		remote.AssertExpectations(t)
	})

	t.Run("initial failure leaves empty collection and clears loading", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("List", mock.Anything).Return(nil, errRemote)

		s := NewSynchronizer(remote, logger.Discard())
		assert.True(t, s.Loading())

		err := s.Load(context.Background())

		assert.ErrorIs(t, err, errRemote)
		assert.Empty(t, s.Products())
		assert.False(t, s.Loading())
	})

	t.Run("failure keeps last successful state", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("List", mock.Anything).Return(nil, errRemote).Once()

		err := s.Load(context.Background())

		assert.Error(t, err)
		assert.Equal(t, seedProducts(), s.Products())
		assert.False(t, s.Loading())
	})

	t.Run("duplicate identifiers keep the first entry", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("List", mock.Anything).Return([]models.Product{
			{ID: "1", Name: "first"},
			{ID: "2", Name: "other"},
			{ID: "1", Name: "second"},
		}, nil)

		s := NewSynchronizer(remote, logger.Discard())
		require.NoError(t, s.Load(context.Background()))

		products := s.Products()
		require.Len(t, products, 2)
		assert.Equal(t, "first", products[0].Name)
		assert.Equal(t, "2", products[1].ID)
	})

	t.Run("entries without identifier are dropped", func(t *testing.T) {
		remote := new(MockRemote)
		remote.On("List", mock.Anything).Return([]models.Product{
			{ID: "1", Name: "kept"},
			{Name: "anonymous"},
		}, nil)

		s := NewSynchronizer(remote, logger.Discard())
		require.NoError(t, s.Load(context.Background()))

		assert.Equal(t, []models.Product{{ID: "1", Name: "kept"}}, s.Products())
	})
}

func TestSynchronizer_Create(t *testing.T) {
	input := models.ProductInput{Name: "Desk", Category: "Furniture", Price: 300}

	t.Run("appends the record returned by the remote", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Create", mock.Anything, input).Return(input.WithID("42"), nil).Once()

		created, err := s.Create(context.Background(), input)
		require.NoError(t, err)

		products := s.Products()
		assert.Len(t, products, len(seedProducts())+1)
		assert.Equal(t, "42", created.ID)
		assert.Equal(t, created, products[len(products)-1])
		remote.AssertExpectations(t)
	})

	t.Run("replaces an entry already loaded with the same id", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Create", mock.Anything, input).Return(input.WithID("1"), nil).Once()

		_, err := s.Create(context.Background(), input)
		require.NoError(t, err)

		products := s.Products()
		assert.Len(t, products, len(seedProducts()))
		assert.Equal(t, "Desk", products[1].Name)
	})

	t.Run("failure leaves collection unchanged", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Create", mock.Anything, input).Return(models.Product{}, errRemote).Once()

		_, err := s.Create(context.Background(), input)

		assert.ErrorIs(t, err, errRemote)
		assert.Equal(t, seedProducts(), s.Products())
	})

	t.Run("record without identifier is rejected", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Create", mock.Anything, input).Return(models.Product{}, nil).Once()

		_, err := s.Create(context.Background(), input)

		assert.True(t, IsKind(err, KindDecode))
		assert.ErrorIs(t, err, ErrMissingID)
		assert.Equal(t, seedProducts(), s.Products())
	})
}

func TestSynchronizer_Update(t *testing.T) {
	input := models.ProductInput{Name: "Chair v2", Description: "Ergonomic", Category: "Furniture", Price: 199, Image: "https://img/1b.png"}

	t.Run("replaces only the matching entry in place", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Update", mock.Anything, "1", input).Return(input.WithID("1"), nil).Once()

		updated, err := s.Update(context.Background(), "1", input)
		require.NoError(t, err)

		before := seedProducts()
		after := s.Products()
		require.Len(t, after, len(before))
		assert.Equal(t, before[0], after[0])
		assert.Equal(t, updated, after[1])
		assert.Equal(t, input, after[1].Input())
		assert.Equal(t, before[2], after[2])
	})

	t.Run("failure leaves collection unchanged", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Update", mock.Anything, "1", input).Return(models.Product{}, errRemote).Once()

		_, err := s.Update(context.Background(), "1", input)

		assert.Error(t, err)
		assert.Equal(t, seedProducts(), s.Products())
	})

	t.Run("identifier is never rewritten", func(t *testing.T) {
		tests := []struct {
			name     string
			returned models.Product
			wantErr  error
		}{
			{name: "empty body", returned: models.Product{}, wantErr: ErrMissingID},
			{name: "different id", returned: input.WithID("9"), wantErr: ErrIDMismatch},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, remote := loaded(t)
				remote.On("Update", mock.Anything, "1", input).Return(tt.returned, nil).Once()

				_, err := s.Update(context.Background(), "1", input)

				assert.True(t, IsKind(err, KindDecode))
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, seedProducts(), s.Products())
			})
		}
	})
}

func TestSynchronizer_Delete(t *testing.T) {
	confirmed := func(string) bool { return true }

	t.Run("removes the entry after remote acknowledgment", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Delete", mock.Anything, "1").Return(nil).Once()

		require.NoError(t, s.Delete(context.Background(), "1", confirmed))

		products := s.Products()
		assert.Len(t, products, len(seedProducts())-1)
		_, found := s.Get("1")
		assert.False(t, found)
		assert.Equal(t, []string{"3", "2"}, []string{products[0].ID, products[1].ID})
	})

	t.Run("failure keeps the entry", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Delete", mock.Anything, "1").Return(errRemote).Once()

		err := s.Delete(context.Background(), "1", confirmed)

		assert.Error(t, err)
		assert.Equal(t, seedProducts(), s.Products())
	})

	t.Run("no request without confirmation", func(t *testing.T) {
		tests := []struct {
			name    string
			confirm ConfirmFunc
		}{
			{"nil confirmation", nil},
			{"declined", func(string) bool { return false }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, remote := loaded(t)

				err := s.Delete(context.Background(), "1", tt.confirm)

				assert.True(t, errors.Is(err, ErrNotConfirmed))
				assert.Equal(t, seedProducts(), s.Products())
				remote.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("confirmation receives the identifier", func(t *testing.T) {
		s, remote := loaded(t)
		remote.On("Delete", mock.Anything, "2").Return(nil).Once()

		var asked string
		err := s.Delete(context.Background(), "2", func(id string) bool {
			asked = id
			return true
		})

		require.NoError(t, err)
		assert.Equal(t, "2", asked)
	})
}

func TestSynchronizer_ProductsReturnsCopy(t *testing.T) {
	s, _ := loaded(t)

	products := s.Products()
	products[0].Name = "mutated"

	assert.Equal(t, "Lamp", s.Products()[0].Name)
}
