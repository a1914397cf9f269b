// Package database loads the three indented text configuration files
// (config, registers, description) into the block/field containers the
// command dispatcher runs against (§4.10).
package database

import (
	"fmt"
	"strconv"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/busregistry"
	"github.com/pandablocks/pandad/internal/class"
)

// Field is a named member of a Block: a class instance plus its
// attribute map and optional description.
type Field struct {
	Name        string
	Description string
	Type        string // class keyword as written in config, e.g. "pos_out"
	Class       class.Class
	Attrs       *attr.Map
}

// Block is a named container with a fixed instance count and base
// register, holding its fields in config-file declaration order.
type Block struct {
	Name        string
	Count       int
	Base        uint32
	Description string

	fieldOrder []string
	fields     map[string]*Field
}

func newBlock(name string, count int) *Block {
	return &Block{Name: name, Count: count, fields: make(map[string]*Field)}
}

func (b *Block) addField(f *Field) error {
	if _, ok := b.fields[f.Name]; ok {
		return fmt.Errorf("block %s: duplicate field %q", b.Name, f.Name)
	}
	b.fields[f.Name] = f
	b.fieldOrder = append(b.fieldOrder, f.Name)
	return nil
}

// Field looks a field up by name.
func (b *Block) Field(name string) (*Field, bool) {
	f, ok := b.fields[name]
	return f, ok
}

// Fields returns the block's fields in declaration order.
func (b *Block) Fields() []*Field {
	out := make([]*Field, len(b.fieldOrder))
	for i, name := range b.fieldOrder {
		out[i] = b.fields[name]
	}
	return out
}

// Database is the fully loaded, finalised runtime database.
type Database struct {
	Bus   *busregistry.Bus
	Mux   *busregistry.MuxTable

	blockOrder []string
	blocks     map[string]*Block
}

func newDatabase() *Database {
	return &Database{blocks: make(map[string]*Block)}
}

func (d *Database) addBlock(b *Block) error {
	if _, ok := d.blocks[b.Name]; ok {
		return fmt.Errorf("duplicate block %q", b.Name)
	}
	d.blocks[b.Name] = b
	d.blockOrder = append(d.blockOrder, b.Name)
	return nil
}

// Block looks a block up by name.
func (d *Database) Block(name string) (*Block, bool) {
	b, ok := d.blocks[name]
	return b, ok
}

// Blocks returns every block in config-file declaration order.
func (d *Database) Blocks() []*Block {
	out := make([]*Block, len(d.blockOrder))
	for i, name := range d.blockOrder {
		out[i] = d.blocks[name]
	}
	return out
}

// InstanceName renders the block part of the entity-path name of
// instance n (0-based) of a block with the given instance count: "BLOCK"
// when the block is a singleton, "BLOCK<n+1>" otherwise (every instance
// suffixed, 1-based, matching the entity grammar's index convention in
// §4.1). Callers append "." and the field name.
func InstanceName(blockName string, count, n int) string {
	if count == 1 {
		return blockName
	}
	return blockName + strconv.Itoa(n+1)
}
