package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"ledger/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	balancesCollection   = "balances"
	migrationsCollection = "migrations"
	seedMigration        = "v1"

	mongoDocumentValidationFailure = 121
)

// walletDocument holds the balance and the newest transactions of one
// wallet. Both live in the same document so a single update moves them
// together.
type walletDocument struct {
	ObjectID     primitive.ObjectID   `bson:"_id,omitempty"`
	ID           uint32               `bson:"id"`
	Balance      models.Balance       `bson:"saldo"`
	Transactions []models.Transaction `bson:"transacoes"`
}

// limitValidator rejects any write that leaves saldo.total below
// -saldo.limite or outside the 32-bit range the total is read back into.
// $inc widens the field to a long, so the range has to be checked here.
func limitValidator() bson.M {
	return bson.M{
		"$expr": bson.M{
			"$and": bson.A{
				bson.M{"$gte": bson.A{
					"$saldo.total",
					bson.M{"$multiply": bson.A{"$saldo.limite", -1}},
				}},
				bson.M{"$gte": bson.A{"$saldo.total", math.MinInt32}},
				bson.M{"$lte": bson.A{"$saldo.total", math.MaxInt32}},
			},
		},
	}
}

// MongoRepository is the document backend. The collection validator
// enforces the limit; the repository never checks it itself.
type MongoRepository struct {
	balances *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{balances: db.Collection(balancesCollection)}
}

func (r *MongoRepository) AddTransaction(ctx context.Context, id uint32, txn models.Transaction) (models.Balance, error) {
	update := bson.M{
		"$inc": bson.M{"saldo.total": txn.Signed()},
		"$push": bson.M{
			"transacoes": bson.M{
				"$each":     bson.A{txn},
				"$position": 0,
				"$slice":    models.StatementSize,
			},
		},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"transacoes": 0})

	var doc walletDocument
	err := r.balances.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Balance{}, notFound(id)
		}
		return models.Balance{}, translateMongoError("add transaction", err, txn.Signed())
	}

	doc.Balance.StatementDate = time.Now().UTC()
	return doc.Balance, nil
}

func (r *MongoRepository) GetStatement(ctx context.Context, id uint32) (models.Statement, error) {
	opts := options.FindOne().
		SetProjection(bson.M{"transacoes": bson.M{"$slice": models.StatementSize}})

	var doc walletDocument
	err := r.balances.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Statement{}, notFound(id)
		}
		return models.Statement{}, translateMongoError("get statement", err, 0)
	}

	doc.Balance.StatementDate = time.Now().UTC()
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}
	return models.Statement{
		Balance:          doc.Balance,
		LastTransactions: doc.Transactions,
	}, nil
}

// translateMongoError maps a validator rejection by the direction of the
// write: a deposit can only break the upper bound.
func translateMongoError(op string, err error, signed int64) error {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(mongoDocumentValidationFailure) {
		if signed > 0 {
			return ErrBalanceOverflow
		}
		return ErrLimitExceeded
	}
	return transient(op, err)
}

// SetupMongo creates the balances collection with its validator and
// unique index, then seeds the wallets once.
func SetupMongo(ctx context.Context, db *mongo.Database) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": balancesCollection})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	if len(names) == 0 {
		opts := options.CreateCollection().
			SetValidator(limitValidator()).
			SetValidationLevel("strict").
			SetValidationAction("error")
		if err := db.CreateCollection(ctx, balancesCollection, opts); err != nil {
			return fmt.Errorf("failed to create %s: %w", balancesCollection, err)
		}
	} else {
		// Collections created by an older build carry a weaker validator.
		err := db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: balancesCollection},
			{Key: "validator", Value: limitValidator()},
			{Key: "validationLevel", Value: "strict"},
			{Key: "validationAction", Value: "error"},
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to update %s validator: %w", balancesCollection, err)
		}
	}

	_, err = db.Collection(balancesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create wallet index: %w", err)
	}

	return migrateMongo(ctx, db)
}

func migrateMongo(ctx context.Context, db *mongo.Database) error {
	migrations := db.Collection(migrationsCollection)
	err := migrations.FindOne(ctx, bson.M{"migration": seedMigration}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	seeds := models.SeedWallets()
	docs := make([]interface{}, 0, len(seeds))
	for _, w := range seeds {
		docs = append(docs, walletDocument{
			ID:           w.ID,
			Balance:      models.Balance{Total: w.Total, Limit: w.Limit},
			Transactions: []models.Transaction{},
		})
	}
	if _, err := db.Collection(balancesCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed wallets: %w", err)
	}
	if _, err := migrations.InsertOne(ctx, bson.M{"migration": seedMigration}); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	slog.Info("mongo wallets seeded", "wallets", len(docs))
	return nil
}

// ResetMongo zeroes every wallet and empties its transaction list.
func ResetMongo(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(balancesCollection).UpdateMany(ctx, bson.M{}, bson.M{
		"$set": bson.M{"saldo.total": 0, "transacoes": bson.A{}},
	})
	if err != nil {
		return fmt.Errorf("failed to reset wallets: %w", err)
	}
	return nil
}
