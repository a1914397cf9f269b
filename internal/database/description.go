package database

import (
	"fmt"
	"io"
	"strings"

	"github.com/pandablocks/pandad/internal/parseutil"
)

// loadDescriptions reads the `description` file (§4.10): depth-1 block
// header "name description..." followed by "field description..."
// lines. Unknown blocks/fields are ignored rather than rejected, since
// descriptions are documentation, not binding.
func loadDescriptions(r io.Reader, db *Database) error {
	pr := parseutil.NewIndentReader(r)

	for {
		line, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if line.Depth != 0 {
			return fmt.Errorf("description line %d: expected a block header", line.Number)
		}
		name, rest := splitFirstWord(line.Text)
		block, ok := db.Block(name)
		if ok {
			block.Description = rest
		}
		if err := loadFieldDescriptions(pr, block); err != nil {
			return err
		}
	}
	return nil
}

func loadFieldDescriptions(pr *parseutil.IndentReader, block *Block) error {
	for {
		peek, err := pr.Peek()
		if err == io.EOF || peek.Depth == 0 {
			return nil
		}
		line, _ := pr.Next()
		name, rest := splitFirstWord(line.Text)
		if block != nil {
			if f, ok := block.Field(name); ok {
				f.Description = rest
			}
		}
	}
}

func splitFirstWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}
