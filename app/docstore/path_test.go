package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPath(t *testing.T) {
	tests := []struct {
		path   Path
		valid  bool
		kind   string
		parent string
	}{
		{path: Products, valid: true, kind: "products", parent: ""},
		{path: UserCart("u1"), valid: true, kind: "users_cart", parent: "users/u1"},
		{path: UserWishlist("u9"), valid: true, kind: "users_wishlist", parent: "users/u9"},
		{path: "users/u1", valid: false},
		{path: "users//cart", valid: false},
		{path: "", valid: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			err := tt.path.Validate()
			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, tt.path.Kind())
			assert.Equal(t, tt.parent, tt.path.Parent())
		})
	}
}

func TestMongoDocumentEncoding(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)
	raw := []byte(`{"name":"Shirt","qty":3,"price":"499.50","_sneaky":true}`)

	doc, err := encodeMongoDoc(UserCart("u1"), "p1_M", raw, created, updated)
	require.NoError(t, err)

	m := doc.Map()
	assert.Equal(t, "users/u1/cart/p1_M", m[mongoKey])
	assert.Equal(t, "users/u1", m[mongoParent])
	assert.NotContains(t, m, "_sneaky")

	encoded, err := bson.Marshal(doc)
	require.NoError(t, err)

	back, err := decodeMongoDoc(encoded)
	require.NoError(t, err)
	assert.Equal(t, "p1_M", back.ID)
	assert.True(t, created.Equal(back.CreateTime))
	assert.True(t, updated.Equal(back.UpdateTime))

	var got struct {
		Name  string `json:"name"`
		Qty   int    `json:"qty"`
		Price string `json:"price"`
	}
	require.NoError(t, back.DataTo(&got))
	assert.Equal(t, "Shirt", got.Name)
	assert.Equal(t, 3, got.Qty)
	assert.Equal(t, "499.50", got.Price)
}
