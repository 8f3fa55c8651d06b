package models

// All lists every model owned by this service, in migration order.
func All() []interface{} {
	return []interface{}{
		&PurchaseHistory{},
		&CupboardItem{},
		&ReceiptItem{},
		&ShoppingList{},
		&ShoppingListItem{},
	}
}
