package messaging

type ChangeTopic string

const (
	ProductSaved   ChangeTopic = "product_saved"
	CatalogChanged ChangeTopic = "catalog_changed"
)

// CatalogChange is the body of a catalog_changed message. All fields are optional, an empty
// change means the whole catalog should be reloaded.
type CatalogChange struct {
	Reason   string `json:"reason,omitempty"`
	Resource string `json:"resource,omitempty"`
}
