package docstore

import (
	"fmt"
	"strings"
)

// Path addresses a collection. Top level collections have a single segment;
// subcollections alternate collection and document segments, e.g.
// "users/u1/cart".
type Path string

const (
	Products Path = "products"
	Orders   Path = "orders"
	Coupons  Path = "coupons"
	Users    Path = "users"
	Settings Path = "settings"
)

func UserCart(uid string) Path {
	return Path("users/" + uid + "/cart")
}

func UserWishlist(uid string) Path {
	return Path("users/" + uid + "/wishlist")
}

func (p Path) segments() []string {
	return strings.Split(string(p), "/")
}

// Validate requires an odd number of non-empty segments.
func (p Path) Validate() error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	segs := p.segments()
	if len(segs)%2 == 0 {
		return fmt.Errorf("%w: %q addresses a document, not a collection", ErrInvalidPath, string(p))
	}
	for _, s := range segs {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, string(p))
		}
	}
	return nil
}

// Kind joins the collection segments, dropping document ids:
// "users/u1/cart" has kind "users_cart".
func (p Path) Kind() string {
	segs := p.segments()
	kinds := make([]string, 0, len(segs)/2+1)
	for i := 0; i < len(segs); i += 2 {
		kinds = append(kinds, segs[i])
	}
	return strings.Join(kinds, "_")
}

// Parent is the document path owning a subcollection, "" for top level.
func (p Path) Parent() string {
	segs := p.segments()
	if len(segs) < 3 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], "/")
}
