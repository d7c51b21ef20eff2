package pagination

// DefaultLimit is the page size used when the request does not specify one
const DefaultLimit = 20

// MaxLimit is the largest page size a client may request
const MaxLimit = 100
