package facts

import (
	"path/filepath"
)

// Merge concatenates docs into one document at path. Ranges that pointed
// into their own document, or were relative to it, are rewritten so they
// still name the same file.
func Merge(path string, docs ...*Document) *Document {
	out := &Document{Path: path}
	base := filepath.Dir(path)
	for _, doc := range docs {
		out.Callables = append(out.Callables, doc.Callables...)
		for _, c := range doc.Calls {
			c.Range.File = rebase(doc.Path, c.Range.File, base)
			if c.Resolutions != nil {
				res := make(map[string]string, len(c.Resolutions))
				for k, v := range c.Resolutions {
					res[k] = v
				}
				c.Resolutions = res
			}
			out.Calls = append(out.Calls, c)
		}
	}
	return out
}

func rebase(docPath, file, base string) string {
	if file == "" {
		file = docPath
	} else if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(docPath), file)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return filepath.ToSlash(absFile)
	}
	if rel, err := filepath.Rel(absBase, absFile); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(absFile)
}
