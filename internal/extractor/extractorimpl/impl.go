package extractorimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/internal/downloader"
	"github.com/orgball2608/insta-media-service/internal/extractor"
	"github.com/orgball2608/insta-media-service/internal/instagram"
	"github.com/orgball2608/insta-media-service/internal/parser"
	"github.com/orgball2608/insta-media-service/internal/repositories/post"
	"github.com/orgball2608/insta-media-service/internal/telegram"
	"github.com/orgball2608/insta-media-service/pkg/errors"
	"github.com/orgball2608/insta-media-service/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	PostRepo   post.Repository
	Instagram  instagram.Client
	Downloader downloader.Downloader
	Telegram   telegram.Client
	Logger     logger.Logger
}

type Impl struct {
	postRepo   post.Repository
	instagram  instagram.Client
	downloader downloader.Downloader
	telegram   telegram.Client
	logger     logger.Logger
	newID      func() string
}

var _ extractor.Service = (*Impl)(nil)

func New(opts Opts) *Impl {
	return &Impl{
		postRepo:   opts.PostRepo,
		instagram:  opts.Instagram,
		downloader: opts.Downloader,
		telegram:   opts.Telegram,
		logger:     opts.Logger.WithComponent("Extractor"),
		newID:      uuid.NewString,
	}
}

func (s *Impl) Extract(ctx context.Context, url string, downloadMedia bool) (*domain.Post, error) {
	shortcode, ok := parser.ParseShortcode(url)
	if !ok {
		return nil, errors.InvalidInput("Invalid Instagram URL")
	}

	existing, err := s.postRepo.GetByInstagramID(ctx, shortcode)
	switch {
	case err == nil:
		s.logger.Debug("Post already extracted", "shortcode", shortcode, "id", existing.ID)
		return existing, nil
	case !errors.Is(err, post.ErrNotFound):
		return nil, fmt.Errorf("failed to look up post %s: %w", shortcode, err)
	}

	snapshot, err := s.instagram.FetchPost(ctx, shortcode)
	if err != nil {
		s.logger.Error("Failed to fetch post", "shortcode", shortcode, "error", err)
		return nil, errors.WrapWithCode(err, errors.CodeExtractionFailed, "failed to fetch post "+shortcode)
	}

	var caption string
	if snapshot.Caption != nil {
		caption = *snapshot.Caption
	}

	p := domain.Post{
		ID:          s.newID(),
		InstagramID: shortcode,
		Caption:     snapshot.Caption,
		Hashtags:    parser.ExtractHashtags(caption),
		MediaType:   domain.ClassifyMedia(snapshot.IsVideo, snapshot.MediaCount),
		MediaURLs:   snapshot.MediaURLs(),
		Likes:       snapshot.LikeCount,
		Comments:    snapshot.CommentCount,
		LocalPaths:  []string{},
		CreatedAt:   snapshot.TakenAt,
	}

	if downloadMedia && len(p.MediaURLs) > 0 {
		result, err := s.downloader.DownloadAll(ctx, p.MediaURLs, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to download media of post %s: %w", shortcode, err)
		}
		p.LocalPaths = result.Paths
		if len(result.Failures) > 0 {
			s.logger.Warn("Some media could not be downloaded",
				"shortcode", shortcode,
				"id", p.ID,
				"failed", len(result.Failures),
			)
		}
	}

	if err := s.postRepo.Create(ctx, p); err != nil {
		if errors.Is(err, post.ErrAlreadyExists) {
			return s.storedByConcurrentRequest(ctx, p)
		}
		if len(p.LocalPaths) > 0 {
			s.logger.Error("Downloaded media left without a post", "id", p.ID, "paths", p.LocalPaths)
		}
		return nil, fmt.Errorf("failed to save post %s: %w", shortcode, err)
	}

	s.logger.Info("Post extracted",
		"shortcode", shortcode,
		"id", p.ID,
		"media_type", p.MediaType,
		"media", len(p.MediaURLs),
		"stored", len(p.LocalPaths),
	)

	if err := s.telegram.SendMessageToDefaultChannel(telegram.PostMessage(p)); err != nil {
		s.logger.Warn("Failed to announce post", "id", p.ID, "error", err)
	}

	return &p, nil
}

// storedByConcurrentRequest resolves a lost insert race: another request stored
// the same shortcode between the lookup and the insert.
func (s *Impl) storedByConcurrentRequest(ctx context.Context, lost domain.Post) (*domain.Post, error) {
	stored, err := s.postRepo.GetByInstagramID(ctx, lost.InstagramID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post %s stored concurrently: %w", lost.InstagramID, err)
	}

	s.logger.Warn("Post was stored by a concurrent request",
		"shortcode", lost.InstagramID,
		"id", stored.ID,
		"discarded_id", lost.ID,
		"orphaned_paths", lost.LocalPaths,
	)

	return stored, nil
}

func (s *Impl) Get(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, "post not found")
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return p, nil
}
