package main

import "github.com/scoly/backend/internal/entity"

// seedProducts is the initial catalog inserted on first boot.
func seedProducts() []entity.Product {
	return []entity.Product{
		{ID: "sku-001", Name: "A4 Spiral Notebook 5-Pack", Description: "200-page ruled notebooks with perforated sheets and laminated covers.", Price: 12.99, ImageURL: "https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=400", Category: "School Supplies", Stock: 300},
		{ID: "sku-002", Name: "Gel Pen Set 24 Colours", Description: "Smooth 0.7mm gel pens in assorted colours, smudge resistant.", Price: 9.49, ImageURL: "https://images.unsplash.com/photo-1585336261022-680e295ce3fe?w=400", Category: "School Supplies", Stock: 450},
		{ID: "sku-003", Name: "Scientific Calculator FX-991", Description: "552 functions, natural textbook display, solar plus battery.", Price: 24.99, ImageURL: "https://images.unsplash.com/photo-1574607383476-f517f260d30b?w=400", Category: "School Supplies", Stock: 120},
		{ID: "sku-004", Name: "Ergonomic School Backpack", Description: "Padded straps, 15\" laptop sleeve, reflective strips, water resistant.", Price: 44.90, ImageURL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400", Category: "Bags", Stock: 85},
		{ID: "sku-005", Name: "Desk Organizer Set", Description: "Mesh desktop organizer with letter tray, pen cup and drawer.", Price: 18.75, ImageURL: "https://images.unsplash.com/photo-1507473885765-e6ed057ab6fe?w=400", Category: "Office Supplies", Stock: 140},
		{ID: "sku-006", Name: "Whiteboard Marker Pack", Description: "8 low-odour dry-erase markers with chisel tip and eraser cap.", Price: 7.25, ImageURL: "https://images.unsplash.com/photo-1586282391129-76a6df230234?w=400", Category: "Office Supplies", Stock: 500},
		{ID: "sku-007", Name: "Watercolour Paint Set", Description: "36 vivid colours with mixing palette and 3 brushes.", Price: 15.60, ImageURL: "https://images.unsplash.com/photo-1513364776144-60967b0f800f?w=400", Category: "Art", Stock: 95},
		{ID: "sku-008", Name: "Geometry Kit", Description: "Compass, protractor, set squares and ruler in a metal tin.", Price: 6.40, ImageURL: "https://images.unsplash.com/photo-1596496181871-9681eacf9764?w=400", Category: "School Supplies", Stock: 260},
	}
}
