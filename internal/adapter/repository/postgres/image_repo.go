package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/domain/entity"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/pagination"
)

const imageColumns = `id, uploader_id, object_key, url, mime_type, size, width, height, created_at`

type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (r *ImageRepo) Save(ctx context.Context, image *entity.Image) error {
	query := `
		INSERT INTO images (` + imageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (object_key) DO UPDATE SET
			id = EXCLUDED.id,
			uploader_id = EXCLUDED.uploader_id,
			url = EXCLUDED.url,
			mime_type = EXCLUDED.mime_type,
			size = EXCLUDED.size,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			created_at = EXCLUDED.created_at
	`
	_, err := r.pool.Exec(ctx, query,
		image.ID, image.UploaderID, image.Key, image.URL,
		image.MimeType, image.Size, image.Width, image.Height, image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByKey(ctx context.Context, key string) (*entity.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE object_key = $1`

	image, err := scanImage(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("querying image: %w", err)
	}
	return image, nil
}

func (r *ImageRepo) ListByUploader(ctx context.Context, uploaderID uuid.UUID, params pagination.Params) ([]entity.Image, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images WHERE uploader_id = $1`, uploaderID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting images: %w", err)
	}

	query := `
		SELECT ` + imageColumns + `
		FROM images
		WHERE uploader_id = $1
		ORDER BY created_at DESC, object_key
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, uploaderID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	images := make([]entity.Image, 0, params.Limit())
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, *image)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating images: %w", err)
	}

	return images, total, nil
}

func (r *ImageRepo) DeleteByKey(ctx context.Context, key string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM images WHERE object_key = $1`, key)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (*entity.Image, error) {
	var image entity.Image
	err := row.Scan(
		&image.ID, &image.UploaderID, &image.Key, &image.URL,
		&image.MimeType, &image.Size, &image.Width, &image.Height, &image.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &image, nil
}
