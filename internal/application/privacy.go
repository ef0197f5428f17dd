package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
	"harpy-detect/internal/metrics"
)

// PrivacyService декодирует изображение, скрывает области детекций и
// кодирует результат.
type PrivacyService struct {
	codec  port.ImageCodec
	filter port.RegionFilter
	now    func() time.Time
}

// NewPrivacyService создаёт сервис фильтрации.
func NewPrivacyService(codec port.ImageCodec, filter port.RegionFilter) *PrivacyService {
	return &PrivacyService{
		codec:  codec,
		filter: filter,
		now:    time.Now,
	}
}

// Detect обрабатывает запрос: детекции возвращаются без изменений, а при
// включённых фильтрах к ответу добавляется отфильтрованная JPEG-копия.
func (s *PrivacyService) Detect(ctx context.Context, req entity.DetectRequest) (*entity.DetectResult, error) {
	if s.codec == nil || s.filter == nil {
		return nil, errors.New("privacy service is not configured")
	}

	img, err := s.codec.DecodeBase64(req.ImageB64)
	if err != nil {
		metrics.RecordDecodeFailure()
		return nil, err
	}

	var filtered []byte
	if req.ApplyPrivacyFilters {
		filtered, err = s.filterAndEncode(ctx, img, entity.Boxes(req.Detections), req.PrivacyMode)
		if err != nil {
			return nil, err
		}
	}

	return &entity.DetectResult{
		TsMs:           s.now().UnixMilli(),
		DetectionCount: len(req.Detections),
		Detections:     req.Detections,
		FilteredImage:  filtered,
	}, nil
}

// FilterImage применяет фильтр к сырым байтам изображения и возвращает JPEG.
func (s *PrivacyService) FilterImage(ctx context.Context, raw []byte, boxes []entity.BoundingBox, mode entity.FilterMode) ([]byte, error) {
	if s.codec == nil || s.filter == nil {
		return nil, errors.New("privacy service is not configured")
	}

	img, err := s.codec.Decode(raw)
	if err != nil {
		metrics.RecordDecodeFailure()
		return nil, err
	}

	return s.filterAndEncode(ctx, img, boxes, mode)
}

func (s *PrivacyService) filterAndEncode(ctx context.Context, img image.Image, boxes []entity.BoundingBox, mode entity.FilterMode) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	// Оригинал не трогаем, все фильтры накапливаются в рабочей копии.
	work := imaging.Clone(img)

	applied := 0
	for i, box := range boxes {
		ok, err := s.filter.Apply(work, box, mode)
		if err != nil {
			return nil, fmt.Errorf("apply %s filter to region %d: %w", mode, i, err)
		}
		metrics.RecordRegion(mode.String(), ok)
		if ok {
			applied++
		} else {
			logger.Debug().Int("region", i).Interface("bbox", box).Msg("Region outside image, skipped")
		}
	}

	elapsed := time.Since(start)
	metrics.ObserveFilter(mode.String(), elapsed)

	out, err := s.codec.EncodeJPEG(work)
	if err != nil {
		return nil, fmt.Errorf("encode filtered image: %w", err)
	}

	logger.Debug().
		Str("mode", mode.String()).
		Int("regions", len(boxes)).
		Int("applied", applied).
		Dur("duration", elapsed).
		Msg("Privacy filters applied")

	return out, nil
}
