package db

import (
	"context"
	"fmt"

	"github.com/ukydev/showroom/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoContentCollection implements ContentCollection over the singleton documents.
type MongoContentCollection struct {
	Database *mongo.Database
}

func (c *MongoContentCollection) collection(name string) *mongo.Collection {
	if c.Database == nil {
		return nil
	}
	return c.Database.Collection(name)
}

func (c *MongoContentCollection) get(ctx context.Context, coll, id string, out interface{}) (bool, error) {
	found, err := getDocument(ctx, c.collection(coll), id, out)
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", coll, id, err)
	}
	return found, nil
}

func (c *MongoContentCollection) save(ctx context.Context, coll, id string, doc interface{}, unset ...string) error {
	set, err := toSetDoc(doc)
	if err != nil {
		return err
	}
	if err := mergeDocument(ctx, c.collection(coll), id, set, unset...); err != nil {
		return fmt.Errorf("save %s/%s: %w", coll, id, err)
	}
	return nil
}

// GetBanner returns the home banner with legacy fields folded in.
func (c *MongoContentCollection) GetBanner(ctx context.Context) (*models.Banner, error) {
	var banner models.Banner
	found, err := c.get(ctx, HomeCollection, BannerDocument, &banner)
	if err != nil || !found {
		return nil, err
	}
	banner.Normalize()
	return &banner, nil
}

// SaveBanner merge-writes the banner and drops legacy field spellings.
func (c *MongoContentCollection) SaveBanner(ctx context.Context, banner models.Banner) error {
	banner.Normalize()
	return c.save(ctx, HomeCollection, BannerDocument, banner, models.BannerLegacyFields...)
}

// GetAbout returns the about page document.
func (c *MongoContentCollection) GetAbout(ctx context.Context) (*models.About, error) {
	var about models.About
	found, err := c.get(ctx, AboutCollection, DataDocument, &about)
	if err != nil || !found {
		return nil, err
	}
	return &about, nil
}

// SaveAbout merge-writes the about page document.
func (c *MongoContentCollection) SaveAbout(ctx context.Context, about models.About) error {
	if about.Values == nil {
		about.Values = []string{}
	}
	return c.save(ctx, AboutCollection, DataDocument, about)
}

// GetContact returns the contact page document.
func (c *MongoContentCollection) GetContact(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	found, err := c.get(ctx, ContactCollection, DataDocument, &contact)
	if err != nil || !found {
		return nil, err
	}
	return &contact, nil
}

// SaveContact merge-writes the contact page document.
func (c *MongoContentCollection) SaveContact(ctx context.Context, contact models.Contact) error {
	return c.save(ctx, ContactCollection, DataDocument, contact)
}

// GetFooter returns the footer document.
func (c *MongoContentCollection) GetFooter(ctx context.Context) (*models.Footer, error) {
	var footer models.Footer
	found, err := c.get(ctx, FooterCollection, DataDocument, &footer)
	if err != nil || !found {
		return nil, err
	}
	return &footer, nil
}

// SaveFooter merge-writes the footer document.
func (c *MongoContentCollection) SaveFooter(ctx context.Context, footer models.Footer) error {
	return c.save(ctx, FooterCollection, DataDocument, footer)
}
