package domain

// Location is a machine's geocoordinate. Distance/geocoding is handled by an
// external service; we only carry the coordinate.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// StockItem is one ledger entry of a vending machine.
// The wire name for quantity is "stock", matching the machine documents.
type StockItem struct {
	ItemName string  `bson:"item_name" json:"itemName"`
	Quantity int     `bson:"quantity" json:"stock"`
	Price    float64 `bson:"price" json:"price"`
	ImageURL string  `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Machine is a physical vending unit with its own stock ledger.
// Version guards read-modify-write cycles on the ledger: every stock write
// must carry the version it read, and bumps it by one.
type Machine struct {
	ID       string      `bson:"_id,omitempty" json:"id"`
	Name     string      `bson:"name" json:"name"`
	Address  string      `bson:"address" json:"address"`
	Location Location    `bson:"location" json:"location"`
	Stock    []StockItem `bson:"stock" json:"stock"`
	Version  int64       `bson:"version" json:"version"`
}

// FindStock returns the ledger entry for the given item name.
func (m *Machine) FindStock(itemName string) (*StockItem, bool) {
	for i := range m.Stock {
		if m.Stock[i].ItemName == itemName {
			return &m.Stock[i], true
		}
	}
	return nil, false
}

// UpsertStock returns a new ledger with qty added to the named item
// (price replaced), or with a new entry appended if the item is absent.
func UpsertStock(stock []StockItem, itemName string, qty int, price float64, imageURL string) []StockItem {
	out := make([]StockItem, len(stock))
	copy(out, stock)
	for i := range out {
		if out[i].ItemName == itemName {
			out[i].Quantity += qty
			out[i].Price = price
			if imageURL != "" {
				out[i].ImageURL = imageURL
			}
			return out
		}
	}
	return append(out, StockItem{
		ItemName: itemName,
		Quantity: qty,
		Price:    price,
		ImageURL: imageURL,
	})
}

// ReconcileStock applies full-replace semantics: the submitted slice is the
// complete desired ledger. Entries present in it are upserted (quantity and
// price overwritten), entries absent from it are dropped, and entries left
// with quantity <= 0 are pruned. The existing slice is not modified.
func ReconcileStock(existing, submitted []StockItem) []StockItem {
	existingByName := make(map[string]StockItem, len(existing))
	for _, item := range existing {
		existingByName[item.ItemName] = item
	}

	out := make([]StockItem, 0, len(submitted))
	for _, item := range submitted {
		if item.Quantity <= 0 {
			continue
		}
		if prev, ok := existingByName[item.ItemName]; ok && item.ImageURL == "" {
			item.ImageURL = prev.ImageURL
		}
		out = append(out, item)
	}
	return out
}

// DecrementStock returns a new ledger with each ordered quantity subtracted.
// If any line would drive an item's quantity below zero, or references an item
// the ledger does not carry, it returns the offending item name and no ledger.
// The check is all-or-nothing: a failing line leaves nothing applied.
func DecrementStock(stock []StockItem, items []OrderItem) ([]StockItem, string) {
	out := make([]StockItem, len(stock))
	copy(out, stock)

	index := make(map[string]int, len(out))
	for i, item := range out {
		index[item.ItemName] = i
	}

	for _, ordered := range items {
		i, ok := index[ordered.ItemName]
		if !ok {
			return nil, ordered.ItemName
		}
		out[i].Quantity -= ordered.Quantity
		if out[i].Quantity < 0 {
			return nil, ordered.ItemName
		}
	}
	return out, ""
}
