// Package cms provides the content-management core for the site backend:
// post CRUD, the about-page singleton, and the media blob lifecycle tied
// to posts.
//
// It exposes a single Service interface orchestrating a Repository
// (posts/about rows) and a BlobStore (media files). Implementations of
// repositories (memory, Postgres) and blob stores (memory, filesystem,
// S3) are provided under subpackages.
//
// A post exclusively owns the blob behind its media_href when that
// reference was produced by the configured BlobStore. Replacing or
// deleting the post releases the owned blob best-effort, always after
// the database mutation has committed.
package cms
