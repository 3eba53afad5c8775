package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/twlotto/backend/internal/repo"
)

var ErrDatasetNotLoaded = errors.New("draw history not loaded")

type Health struct {
	DatasetRepo *repo.Dataset
}

func NewHealth(datasetRepo *repo.Dataset) *Health {
	return &Health{
		DatasetRepo: datasetRepo,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	if _, err := s.DatasetRepo.Current(); err != nil {
		return errors.Wrap(ErrDatasetNotLoaded, err.Error())
	}
	return nil
}
