package fx

import (
	"github.com/orgball2608/insta-media-service/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
)
