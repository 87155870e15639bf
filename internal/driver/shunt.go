package driver

import (
	"tidy/internal/diag"
	"tidy/internal/lexer"
	"tidy/internal/shunt"
	"tidy/internal/source"
	"tidy/internal/token"
)

// ShuntResult holds the engine's output sequence for one file.
// On a fatal error Items holds what was produced before it.
type ShuntResult struct {
	FileSet *source.FileSet
	File    *source.File
	Items   []token.Token
	Err     error
	Bag     *diag.Bag
}

// Shunt loads path and runs lexer and engine, without building the tree.
func Shunt(path string, opts Options) (*ShuntResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return shuntFile(fs, fs.Get(fileID), opts), nil
}

// ShuntSource runs the engine over inline text.
func ShuntSource(name, text string, opts Options) *ShuntResult {
	fs := source.NewFileSet()
	return shuntFile(fs, fs.Get(fs.AddVirtual(name, []byte(text))), opts)
}

func shuntFile(fs *source.FileSet, file *source.File, opts Options) *ShuntResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	table := opts.table()
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, Table: table})
	items, err := shunt.Collect(lx, shunt.Options{Table: table})
	if d, ok := diag.AsDiagnostic(err); ok {
		bag.Add(d)
	}
	return &ShuntResult{FileSet: fs, File: file, Items: items, Err: err, Bag: bag}
}
