// Package frontmatter reads the YAML header of Markdown files such as a
// skill's SKILL.md.
//
// A header is the block between a first line of "---" and the next line of
// "---". Files without one decode to the zero value:
//
//	var meta struct {
//		Name        string `yaml:"name"`
//		Description string `yaml:"description"`
//	}
//	found, err := frontmatter.Decode(f, &meta)
package frontmatter
