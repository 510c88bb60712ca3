// Package driver orchestrates the lint pipeline: file discovery, the
// lex/parse/check phases, the rewrite pass, and the result cache.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sift/internal/ast"
	"sift/internal/cache"
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/rules"
	"sift/internal/source"
)

// Options настраивают один прогон драйвера.
type Options struct {
	MaxDiagnostics int
	Jobs           int              // <=0 — по числу CPU
	Cache          *cache.DiskCache // nil — без кэша
	Rules          []rules.ConfiguredRule
}

func (o *Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// CheckResult содержит результат проверки одного файла.
type CheckResult struct {
	Path      string        // Относительный путь к файлу
	FileID    source.FileID // ID файла в FileSet
	Bag       *diag.Bag     // Диагностики
	FromCache bool          // Диагностики восстановлены из кэша
}

// listSwiftFiles возвращает отсортированный список всех *.swift файлов.
func listSwiftFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".swift") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// runRules прогоняет детекторы по готовому дереву.
func runRules(astFile *ast.File, active []rules.ConfiguredRule, reporter diag.Reporter) {
	parents := ast.BuildParentMap(astFile)
	for _, cr := range active {
		checker, ok := cr.Rule.(rules.ExprChecker)
		if !ok {
			continue
		}
		ctx := &rules.CheckContext{
			File:     astFile,
			Parents:  parents,
			Reporter: reporter,
			Severity: cr.Severity,
		}
		astFile.WalkExprs(func(id ast.ExprID) {
			checker.CheckExpr(ctx, id)
		})
	}
}

// CheckFile проверяет один уже загруженный файл. При попадании в кэш фазы
// лексера/парсера/правил пропускаются целиком.
func CheckFile(fileSet *source.FileSet, fileID source.FileID, opts Options) *CheckResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &CheckResult{Path: file.Path, FileID: fileID, Bag: bag}

	var key cache.Digest
	if opts.Cache != nil {
		key = cache.Key(file.Hash, cache.RulesKey(opts.Rules))
		var payload cache.Payload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			if items, ok := payload.Restore(fileID); ok {
				for _, d := range items {
					bag.Add(d)
				}
				res.FromCache = true
				return res
			}
		}
		// ошибки чтения кэша не фатальны: просто пересчитываем
	}

	// дубли отсекаем на входе: повторная конфигурация одного правила или
	// многократный обход одного узла не должны множить диагностики
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	astFile := parser.ParseFile(file, reporter)
	runRules(astFile, opts.Rules, reporter)
	bag.Sort()

	if opts.Cache != nil {
		_ = opts.Cache.Put(key, cache.FromDiagnostics(file.Path, bag.Items()))
	}
	return res
}

// CheckDir проверяет все *.swift файлы в директории параллельно.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []CheckResult, error) {
	files, err := listSwiftFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
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

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(files))

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
				results[i] = CheckResult{Path: path, Bag: bag}
				return nil
			}

			results[i] = *CheckFile(fileSet, fileIDs[path], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
