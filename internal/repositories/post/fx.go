package post

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("post_repository",
	fx.Provide(
		func(pool *pgxpool.Pool, logger logger.Logger) *Pgx {
			return NewPgx(pool, logger)
		},
		fx.Annotate(
			func(repo *Pgx) Repository {
				return repo
			},
			fx.As(new(Repository)),
		),
	),
)
