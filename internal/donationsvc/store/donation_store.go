package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satsangkankpul/donation-services/internal/db"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DonationCollection = "Donars"

type donationDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FullName      string             `bson:"fullName"`
	Address       string             `bson:"address"`
	Mobile        string             `bson:"mobile"`
	Email         string             `bson:"email"`
	AmountINR     interface{}        `bson:"amountINR"` // Decimal128 on write, legacy rows may hold a double
	Comment       string             `bson:"comment"`
	PaymentMethod string             `bson:"paymentMethod"`
	OrderID       string             `bson:"orderId,omitempty"`
	PaymentID     string             `bson:"paymentId,omitempty"`
	Date          time.Time          `bson:"date"`
}

type DonationStore struct {
	coll *mongo.Collection
}

func NewDonationStore(database *mongo.Database) *DonationStore {
	return &DonationStore{coll: database.Collection(DonationCollection)}
}

func (s *DonationStore) EnsureIndexes(ctx context.Context) error {
	if err := db.CreateIndex(ctx, s.coll.Database(), DonationCollection,
		bson.D{{Key: "date", Value: -1}}, nil); err != nil {
		return err
	}
	// offline donations carry no paymentId, so sparse keeps them out of the unique set
	return db.CreateIndex(ctx, s.coll.Database(), DonationCollection,
		bson.D{{Key: "paymentId", Value: 1}},
		options.Index().SetName("paymentId_unique").SetUnique(true).SetSparse(true))
}

func (s *DonationStore) CreateDonation(ctx context.Context, d *models.Donation) (string, error) {
	amount, err := primitive.ParseDecimal128(d.AmountINR.String())
	if err != nil {
		return "", fmt.Errorf("could not encode amount %s: %w", d.AmountINR, err)
	}

	doc := donationDocument{
		ID:            primitive.NewObjectID(),
		FullName:      d.FullName,
		Address:       d.Address,
		Mobile:        d.Mobile,
		Email:         d.Email,
		AmountINR:     amount,
		Comment:       d.Comment,
		PaymentMethod: string(d.PaymentMethod),
		OrderID:       d.OrderID,
		PaymentID:     d.PaymentID,
		Date:          d.Date,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("could not create donation: %w", models.ErrDuplicatePayment)
		}
		return "", fmt.Errorf("could not create donation: %w", err)
	}

	return doc.ID.Hex(), nil
}

// ListDonations returns every donation, newest first.
func (s *DonationStore) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []donationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}

	donations := make([]*models.Donation, 0, len(docs))
	for _, doc := range docs {
		d, err := doc.model()
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// GetDonationByID returns nil, nil when no donation matches, including
// when id is not a valid ObjectID.
func (s *DonationStore) GetDonationByID(ctx context.Context, id string) (*models.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *DonationStore) GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	return s.findOne(ctx, bson.D{{Key: "paymentId", Value: paymentID}})
}

func (s *DonationStore) findOne(ctx context.Context, filter bson.D) (*models.Donation, error) {
	var doc donationDocument
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return doc.model()
}

func (doc donationDocument) model() (*models.Donation, error) {
	amount, err := decodeAmount(doc.AmountINR)
	if err != nil {
		return nil, fmt.Errorf("donation %s: %w", doc.ID.Hex(), err)
	}

	return &models.Donation{
		ID:            doc.ID.Hex(),
		FullName:      doc.FullName,
		Address:       doc.Address,
		Mobile:        doc.Mobile,
		Email:         doc.Email,
		AmountINR:     amount,
		Comment:       doc.Comment,
		PaymentMethod: models.PaymentMethod(doc.PaymentMethod),
		OrderID:       doc.OrderID,
		PaymentID:     doc.PaymentID,
		Date:          doc.Date,
	}, nil
}

func decodeAmount(v interface{}) (decimal.Decimal, error) {
	switch a := v.(type) {
	case nil:
		return decimal.Zero, nil
	case primitive.Decimal128:
		return decimal.NewFromString(a.String())
	case float64:
		return decimal.NewFromFloat(a), nil
	case int32:
		return decimal.NewFromInt32(a), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case string:
		return decimal.NewFromString(a)
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}
}
