package db

import (
	"embed"
	"log"
)

//go:embed views/*.sql
var viewFiles embed.FS

// viewOrder fixes the application order; the view texts are authored by the
// dashboard side and treated as opaque here.
var viewOrder = []string{
	"artist_origin_map.sql",
	"languages.sql",
	"top_genres_by_year.sql",
	"top_moods_by_country.sql",
}

// ApplyViews applies each view definition in order. A failing view is logged
// and does not block the remaining views.
func (db *DB) ApplyViews() {
	for _, name := range viewOrder {
		bs, err := viewFiles.ReadFile("views/" + name)
		if err != nil {
			log.Printf("error reading view %s: %v", name, err)
			continue
		}
		if err := db.Exec(string(bs)).Error; err != nil {
			log.Printf("error applying view %s: %v", name, err)
			continue
		}
		log.Printf("view applied: %s", name)
	}
}
