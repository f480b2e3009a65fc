package worker

import (
	"context"
	"path/filepath"

	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
)

// QuizImporter stores a quiz document read from disk.
type QuizImporter interface {
	ImportFile(ctx context.Context, path string) (*models.Quiz, error)
}

// ImportQuizJob loads one quiz document into the catalog.
type ImportQuizJob struct {
	Importer QuizImporter
	Path     string
}

func (j *ImportQuizJob) Name() string { return "import_quiz:" + filepath.Base(j.Path) }

func (j *ImportQuizJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("path", j.Path)
	qz, err := j.Importer.ImportFile(ctx, j.Path)
	if err != nil {
		log.Warn("quiz import failed: %v", err)
		return err
	}
	log.Info("imported quiz %s (%d questions)", qz.ID, len(qz.Questions))
	return nil
}
