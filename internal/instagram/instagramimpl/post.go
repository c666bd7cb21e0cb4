package instagramimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/internal/instagram"
)

const mediaTypeVideo = 2

// FetchPost resolves the shortcode to a media id and reads the media item.
func (ig *IgImpl) FetchPost(ctx context.Context, shortcode string) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mediaID, err := goinsta.MediaIDFromShortID(shortcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", instagram.ErrPostNotFound, err)
	}

	if err := ig.ensureLoggedIn(); err != nil {
		return nil, err
	}

	ig.Logger.Info("Fetching post", "shortcode", shortcode, "media_id", mediaID)

	feed, err := ig.Client.GetMedia(mediaID)
	if err != nil {
		ig.Logger.Error("Get media error", "shortcode", shortcode, "error", err)
		ig.dropSessionOn(err)
		return nil, fmt.Errorf("failed to get media %s: %w", shortcode, err)
	}
	if len(feed.Items) == 0 || feed.Items[0] == nil {
		return nil, instagram.ErrPostNotFound
	}

	return toSnapshot(feed.Items[0]), nil
}

func toSnapshot(item *goinsta.Item) *domain.Snapshot {
	snapshot := &domain.Snapshot{
		LikeCount:    item.Likes,
		CommentCount: item.CommentCount,
		IsVideo:      item.MediaType == mediaTypeVideo,
		MediaCount:   1,
		URL:          item.Images.GetBest(),
	}

	if text := item.Caption.Text; text != "" {
		snapshot.Caption = &text
	}

	if item.TakenAt > 0 {
		takenAt := time.Unix(item.TakenAt, 0).UTC()
		snapshot.TakenAt = &takenAt
	}

	if len(item.CarouselMedia) > 0 {
		snapshot.MediaCount = len(item.CarouselMedia)
		for _, child := range item.CarouselMedia {
			snapshot.SidecarURLs = append(snapshot.SidecarURLs, child.Images.GetBest())
		}
	}

	return snapshot
}
