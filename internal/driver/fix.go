package driver

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/rewrite"
	"sift/internal/rules"
	"sift/internal/source"
)

// FixResult содержит результат переписывания одного файла.
type FixResult struct {
	Path        string
	FileID      source.FileID
	Bag         *diag.Bag
	Corrections []rules.Correction
	Changed     bool
	Skipped     bool // файл с ошибками парсинга не переписывается
}

// FixFile парсит и переписывает один загруженный файл. Файл с ошибками
// парсинга пропускается: дерево после восстановления не обязано полно
// отражать исходник, и запись обратно могла бы его испортить.
func FixFile(fileSet *source.FileSet, fileID source.FileID, opts Options, dryRun bool) (*FixResult, error) {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &FixResult{Path: file.Path, FileID: fileID, Bag: bag}

	astFile := parser.ParseFile(file, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		res.Skipped = true
		return res, nil
	}

	var rewriters []rules.SeqRewriter
	for _, cr := range opts.Rules {
		if rw, ok := cr.Rule.(rules.SeqRewriter); ok {
			rewriters = append(rewriters, rw)
		}
	}

	rw := rewrite.File(astFile, rewriters)
	res.Corrections = rw.Corrections
	res.Changed = rw.Changed
	if !rw.Changed {
		return res, nil
	}

	if err := rewrite.Apply(file.Path, rw, dryRun); err != nil && !errors.Is(err, rewrite.ErrNoChanges) {
		return res, err
	}
	return res, nil
}

// FixDir переписывает все *.swift файлы в директории параллельно.
func FixDir(ctx context.Context, dir string, opts Options, dryRun bool) (*source.FileSet, []FixResult, error) {
	files, err := listSwiftFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	results := make([]FixResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FixResult{Path: path, Bag: bag, Skipped: true}
				return nil
			}

			res, err := FixFile(fileSet, fileIDs[path], opts, dryRun)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
