package symexpr

import "github.com/symexlang/symex/internal/symerr"

func typeMismatchErr(op, expected, got string) error {
	return symerr.NewTypeMismatch(op, expected, got)
}
