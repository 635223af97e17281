package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"subuk/numango/numa"
	"subuk/numango/util"

	"github.com/rs/zerolog"
)

type DocumentRepository struct {
	root        string
	extensions  []string
	recursive   bool
	maxFileSize uint64
	logger      zerolog.Logger
}

type DocumentRepositoryOptions struct {
	Extensions  []string
	Recursive   bool
	MaxFileSize uint64
}

func NewDocumentRepository(root string, options DocumentRepositoryOptions, logger zerolog.Logger) *DocumentRepository {
	return &DocumentRepository{
		root:        util.ExpandHomeDir(root),
		extensions:  options.Extensions,
		recursive:   options.Recursive,
		maxFileSize: options.MaxFileSize,
		logger:      logger,
	}
}

func (repo *DocumentRepository) matches(filename string) bool {
	ext := filepath.Ext(filename)
	for _, allowed := range repo.extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

func (repo *DocumentRepository) paths() ([]string, error) {
	info, err := os.Stat(repo.root)
	if err != nil {
		return nil, util.NewError(err, "cannot stat %s", repo.root)
	}
	if !info.IsDir() {
		return []string{repo.root}, nil
	}

	paths := []string{}
	walkErr := filepath.Walk(repo.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != repo.root && !repo.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !repo.matches(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, util.NewError(walkErr, "cannot walk %s", repo.root)
	}
	sort.Strings(paths)
	return paths, nil
}

func (repo *DocumentRepository) name(path string) string {
	if path == repo.root {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(repo.root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func (repo *DocumentRepository) read(path string) (*numa.Document, error) {
	if repo.maxFileSize > 0 {
		size, err := util.GetFileSize(path)
		if err != nil {
			return nil, util.NewError(err, "cannot get file size")
		}
		if size > repo.maxFileSize {
			return nil, errFileTooLarge{path: path, size: size, limit: repo.maxFileSize}
		}
	}
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, util.NewError(err, "cannot read document")
	}
	return &numa.Document{
		Name: repo.name(path),
		Path: path,
		Kind: numa.DocumentKindFromFilename(path),
		Text: string(content),
	}, nil
}

func (repo *DocumentRepository) List() ([]*numa.Document, error) {
	paths, err := repo.paths()
	if err != nil {
		return nil, err
	}
	docs := []*numa.Document{}
	for _, path := range paths {
		doc, err := repo.read(path)
		if err != nil {
			repo.logger.Warn().Err(err).Str("path", path).Msg("ignoring unreadable document")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (repo *DocumentRepository) Get(name string) (*numa.Document, error) {
	paths, err := repo.paths()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if repo.name(path) == name {
			return repo.read(path)
		}
	}
	return nil, numa.ErrDocumentNotFound
}
