package migrations

// PostsTable is the storage of extracted Instagram posts.
const PostsTable = "instagram_posts"

// Schema statements are idempotent and safe to run on every start.
const (
	CreatePostsTable = `
	CREATE TABLE IF NOT EXISTS instagram_posts (
		id VARCHAR(255) PRIMARY KEY,
		instagram_id VARCHAR(255) NOT NULL,
		caption TEXT,
		hashtags JSONB,
		media_type VARCHAR(50),
		media_urls JSONB,
		likes INTEGER,
		comments INTEGER,
		local_paths JSONB,
		created_at TIMESTAMP
	)`

	// One row per shortcode; concurrent first extractions collide here.
	CreatePostsInstagramIDIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS instagram_posts_instagram_id_key ON instagram_posts (instagram_id)`

	DropPostsTable = `DROP TABLE IF EXISTS instagram_posts`
)

// PostsSchema lists the statements creating the posts storage, in order.
var PostsSchema = []string{CreatePostsTable, CreatePostsInstagramIDIndex}
