package relation

import (
	"errors"
	"fmt"
	"iter"

	"github.com/goccy/go-json"
	"github.com/jlibgo/jlib/internal/utils"
	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

var (
	ErrAssociationExists = errors.New("association already exists")
	ErrNoSuchAssociation = errors.New("no such association")
	ErrNoSuchLeftValue   = errors.New("no such left value")
	ErrNoSuchRightValue  = errors.New("no such right value")
)

type Association[L, R constraints.Ordered] struct {
	Left  L `json:"left"`
	Right R `json:"right"`
}

func (a Association[L, R]) String() string {
	return fmt.Sprintf("%v <-> %v", a.Left, a.Right)
}

// pair is the key of the indexes: a pair with lowest set sorts before every pair having the same first value.
type pair[A, B constraints.Ordered] struct {
	first  A
	second B
	lowest bool
}

func lessPair[A, B constraints.Ordered](a, b pair[A, B]) bool {
	if a.first != b.first {
		return a.first < b.first
	}
	if a.lowest || b.lowest {
		return a.lowest && !b.lowest
	}
	return a.second < b.second
}

// A BinaryRelation is a set of associations between left values and right values. Both directions are indexed:
// the right values associated with a left value (and conversely) are returned in ascending order.
//
// BinaryRelation is not safe for concurrent use.
type BinaryRelation[L, R constraints.Ordered] struct {
	byLeft  *btree.BTreeG[pair[L, R]]
	byRight *btree.BTreeG[pair[R, L]]
}

func NewBinaryRelation[L, R constraints.Ordered](associations ...Association[L, R]) (*BinaryRelation[L, R], error) {
	rel := &BinaryRelation[L, R]{
		byLeft:  btree.NewBTreeG(lessPair[L, R]),
		byRight: btree.NewBTreeG(lessPair[R, L]),
	}

	if err := rel.AssociateAll(associations); err != nil {
		return nil, err
	}
	return rel, nil
}

func (rel *BinaryRelation[L, R]) Len() int {
	return rel.byLeft.Len()
}

func (rel *BinaryRelation[L, R]) Contains(left L, right R) bool {
	_, ok := rel.byLeft.Get(pair[L, R]{first: left, second: right})
	return ok
}

// Associate adds the association, an error matching ErrAssociationExists is returned if it is already contained.
func (rel *BinaryRelation[L, R]) Associate(left L, right R) error {
	if rel.Contains(left, right) {
		return fmt.Errorf("%w: %s", ErrAssociationExists, Association[L, R]{left, right})
	}
	rel.add(left, right)
	return nil
}

// AssertAssociated adds the association if it is not already contained, it returns true if the
// association has been added.
func (rel *BinaryRelation[L, R]) AssertAssociated(left L, right R) bool {
	if rel.Contains(left, right) {
		return false
	}
	rel.add(left, right)
	return true
}

// AssociateAll adds the associations. If one of them is already contained (or present twice in associations)
// nothing is added.
func (rel *BinaryRelation[L, R]) AssociateAll(associations []Association[L, R]) error {
	seen := make(map[Association[L, R]]struct{}, len(associations))

	for _, association := range associations {
		_, duplicate := seen[association]
		if duplicate || rel.Contains(association.Left, association.Right) {
			return fmt.Errorf("%w: %s", ErrAssociationExists, association)
		}
		seen[association] = struct{}{}
	}

	for _, association := range associations {
		rel.add(association.Left, association.Right)
	}
	return nil
}

func (rel *BinaryRelation[L, R]) add(left L, right R) {
	rel.byLeft.Set(pair[L, R]{first: left, second: right})
	rel.byRight.Set(pair[R, L]{first: right, second: left})
}

// Dissociate removes the association, an error matching ErrNoSuchAssociation is returned if it is not contained.
func (rel *BinaryRelation[L, R]) Dissociate(left L, right R) error {
	if _, ok := rel.byLeft.Delete(pair[L, R]{first: left, second: right}); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchAssociation, Association[L, R]{left, right})
	}
	rel.byRight.Delete(pair[R, L]{first: right, second: left})
	return nil
}

func (rel *BinaryRelation[L, R]) HasLeft(left L) bool {
	return len(seconds(rel.byLeft, left)) > 0
}

func (rel *BinaryRelation[L, R]) HasRight(right R) bool {
	return len(seconds(rel.byRight, right)) > 0
}

// RightValues returns the right values associated with left, an error matching ErrNoSuchLeftValue is returned
// if there are none.
func (rel *BinaryRelation[L, R]) RightValues(left L) ([]R, error) {
	values := seconds(rel.byLeft, left)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchLeftValue, left)
	}
	return values, nil
}

// LeftValues returns the left values associated with right, an error matching ErrNoSuchRightValue is returned
// if there are none.
func (rel *BinaryRelation[L, R]) LeftValues(right R) ([]L, error) {
	values := seconds(rel.byRight, right)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchRightValue, right)
	}
	return values, nil
}

func seconds[A, B constraints.Ordered](index *btree.BTreeG[pair[A, B]], first A) []B {
	var values []B

	index.Ascend(pair[A, B]{first: first, lowest: true}, func(p pair[A, B]) bool {
		if p.first != first {
			return false
		}
		values = append(values, p.second)
		return true
	})
	return values
}

// All returns an iterator over the associations ordered by left value then by right value.
func (rel *BinaryRelation[L, R]) All() iter.Seq2[L, R] {
	return func(yield func(L, R) bool) {
		rel.byLeft.Scan(func(p pair[L, R]) bool {
			return yield(p.first, p.second)
		})
	}
}

func (rel *BinaryRelation[L, R]) Associations() []Association[L, R] {
	associations := make([]Association[L, R], 0, rel.Len())
	for left, right := range rel.All() {
		associations = append(associations, Association[L, R]{left, right})
	}
	return associations
}

// MarshalJSON encodes the relation as an array of {"left": ..., "right": ...} objects.
func (rel *BinaryRelation[L, R]) MarshalJSON() ([]byte, error) {
	return utils.MarshalJsonNoHTMLEspace(rel.Associations())
}

func (rel *BinaryRelation[L, R]) UnmarshalJSON(data []byte) error {
	var associations []Association[L, R]
	if err := json.Unmarshal(data, &associations); err != nil {
		return err
	}

	decoded, err := NewBinaryRelation(associations...)
	if err != nil {
		return err
	}
	*rel = *decoded
	return nil
}
