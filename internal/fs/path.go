package fs

import (
	"strings"

	"ptfs/internal/logging"
)

var (
	pathLogger = logging.GetLogger().WithPrefix("path")
)

// DefaultMaxPathLen bounds translated paths when no explicit bound is set.
// It matches PATH_MAX on Linux.
const DefaultMaxPathLen = 4096

// Translator maps virtual paths, as presented by the driver, onto real
// paths under the mirrored root. It holds no mutable state and is safe for
// concurrent use.
type Translator struct {
	root   string
	maxLen int
}

// NewTranslator creates a Translator for an absolute root directory.
// A maxLen of zero or less selects DefaultMaxPathLen.
func NewTranslator(root string, maxLen int) (*Translator, error) {
	if root == "" || !strings.HasPrefix(root, "/") {
		return nil, &Error{Op: "translate", Path: root, Err: ErrInvalidRoot}
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxPathLen
	}
	if len(root) > maxLen {
		return nil, &Error{Op: "translate", Path: root, Err: ErrPathTooLong}
	}
	pathLogger.Debug("Translating virtual paths under %q (max %d bytes)", root, maxLen)
	return &Translator{root: root, maxLen: maxLen}, nil
}

// Root returns the mirrored root directory.
func (t *Translator) Root() string {
	return t.root
}

// MaxLen returns the longest real path Translate accepts.
func (t *Translator) MaxLen() int {
	return t.maxLen
}

// Translate returns Root ++ vpath byte for byte. The empty virtual path
// names the root itself. Paths are not cleaned; "..", "." and repeated
// slashes are left to the host.
func (t *Translator) Translate(vpath string) (string, error) {
	if vpath == "" {
		return t.root, nil
	}
	if len(t.root)+len(vpath) > t.maxLen {
		pathLogger.Debug("Path too long: %d bytes under %q", len(vpath), t.root)
		return "", ErrPathTooLong
	}
	full := t.root + vpath
	pathLogger.Trace("Translated %q -> %q", vpath, full)
	return full, nil
}
