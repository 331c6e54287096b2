// Package fixture embeds the reference dataset used to seed a store.
//
// Articles are numbered in file order starting at 1, and comments refer to
// articles by that number. Seeding a fresh store therefore reproduces the
// same ids every time.
package fixture

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/sakif/newsboard/internal/model"
)

//go:embed data/*.json
var files embed.FS

// Data is a complete dataset, in insertion order.
type Data struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []model.Article
	Comments []model.Comment
}

// Load decodes the embedded dataset. Article ids are assigned from file
// order so comments can be checked against them.
func Load() (Data, error) {
	var d Data
	for _, f := range []struct {
		name string
		dst  any
	}{
		{"data/topics.json", &d.Topics},
		{"data/users.json", &d.Users},
		{"data/articles.json", &d.Articles},
		{"data/comments.json", &d.Comments},
	} {
		b, err := files.ReadFile(f.name)
		if err != nil {
			return Data{}, fmt.Errorf("fixture: reading %s: %w", f.name, err)
		}
		if err := json.Unmarshal(b, f.dst); err != nil {
			return Data{}, fmt.Errorf("fixture: decoding %s: %w", f.name, err)
		}
	}

	for i := range d.Articles {
		d.Articles[i].ArticleID = int64(i + 1)
	}
	for i := range d.Comments {
		d.Comments[i].CommentID = int64(i + 1)
		if id := d.Comments[i].ArticleID; id < 1 || id > int64(len(d.Articles)) {
			return Data{}, fmt.Errorf("fixture: comment %d references unknown article %d", i+1, id)
		}
	}

	return d, nil
}

// MustLoad is Load for tests and seeding tools, where a broken embedded
// dataset is a programming error.
func MustLoad() Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}
