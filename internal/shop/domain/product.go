package domain

import "time"

// ProductType discriminates catalog entries. ALL is only valid as a listing
// filter, never on a stored row.
type ProductType string

const (
	ProductAll     ProductType = "ALL"
	ProductPhone   ProductType = "PHONE"
	ProductPackage ProductType = "PACKAGE"
	ProductBundle  ProductType = "BUNDLE"
)

// PackageType categorises connectivity packages.
type PackageType string

const (
	PackageMobile    PackageType = "MOBILE"
	PackageBroadband PackageType = "BROADBAND"
	PackageTablet    PackageType = "TABLET"
	PackageCombo     PackageType = "COMBO"
)

type Phone struct {
	ID          string      `json:"id"`
	Type        ProductType `json:"type"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Price       float64     `json:"price"`
	ImgURL      string      `json:"imgUrl"`
	Description *string     `json:"description"`
	Rating      *float64    `json:"rating"`
	Stock       int         `json:"stock"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Package struct {
	ID          string      `json:"id"`
	Type        ProductType `json:"type"`
	PackageType PackageType `json:"packageType"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Price       float64     `json:"price"`
	Rating      *float64    `json:"rating"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Bundle struct {
	ID          string       `json:"id"`
	Type        ProductType  `json:"type"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       float64      `json:"price"`
	Rating      *float64     `json:"rating"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	BundleItems []BundleItem `json:"bundleItems,omitempty"`
}

// BundleItem links a bundle to a phone or a package (at least one must be
// set). Phone and Package are populated on nested bundle reads.
type BundleItem struct {
	ID        string   `json:"id"`
	BundleID  string   `json:"bundleId"`
	PhoneID   *string  `json:"phoneId"`
	PackageID *string  `json:"packageId"`
	Quantity  int      `json:"quantity"`
	Phone     *Phone   `json:"phone,omitempty"`
	Package   *Package `json:"package,omitempty"`
}
