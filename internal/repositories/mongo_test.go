package repositories

import (
	"context"
	"math"
	"testing"
	"time"

	"ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func walletDoc(id int32, total int32, limit int32, transactions ...bson.D) bson.D {
	list := bson.A{}
	for _, tx := range transactions {
		list = append(list, tx)
	}
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "id", Value: id},
		{Key: "saldo", Value: bson.D{{Key: "total", Value: total}, {Key: "limite", Value: limit}}},
		{Key: "transacoes", Value: list},
	}
}

func transactionDoc(value int32, kind string, description string, at time.Time) bson.D {
	return bson.D{
		{Key: "valor", Value: value},
		{Key: "tipo", Value: kind},
		{Key: "descricao", Value: description},
		{Key: "realizada_em", Value: at},
	}
}

func TestMongoRepository_AddTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applies the increment", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: walletDoc(1, -1000, 1000)},
		))

		balance, err := repo.AddTransaction(context.Background(), 1, withdraw(1000))
		require.NoError(mt, err)
		assert.Equal(mt, int32(-1000), balance.Total)
		assert.Equal(mt, uint32(1000), balance.Limit)
		assert.False(mt, balance.StatementDate.IsZero())
	})

	mt.Run("validator rejection is a limit error", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    mongoDocumentValidationFailure,
			Name:    "DocumentValidationFailure",
			Message: "Document failed validation",
		}))

		_, err := repo.AddTransaction(context.Background(), 1, withdraw(1))
		assert.ErrorIs(mt, err, ErrLimitExceeded)
		assert.NotErrorIs(mt, err, ErrBalanceOverflow)
	})

	mt.Run("deposit past the 32-bit range is an overflow", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    mongoDocumentValidationFailure,
			Name:    "DocumentValidationFailure",
			Message: "Document failed validation",
		}))

		_, err := repo.AddTransaction(context.Background(), 1, deposit(4000000000))
		assert.ErrorIs(mt, err, ErrBalanceOverflow)
		assert.ErrorIs(mt, err, ErrLimitExceeded)
		assert.False(mt, IsTransient(err))
	})

	mt.Run("missing wallet", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.AddTransaction(context.Background(), 9999, deposit(1))
		assert.ErrorIs(mt, err, ErrAccountNotFound)
	})

	mt.Run("other server errors are transient", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "shutting down",
		}))

		_, err := repo.AddTransaction(context.Background(), 1, deposit(1))
		assert.True(mt, IsTransient(err))
	})
}

func TestMongoRepository_GetStatement(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "ledger." + balancesCollection

	mt.Run("returns balance and newest transactions", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		newer := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Minute)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			walletDoc(1, -9098, 100000,
				transactionDoc(10, "c", "descricao", newer),
				transactionDoc(90000, "d", "descricao", older),
			),
		))

		stmt, err := repo.GetStatement(context.Background(), 1)
		require.NoError(mt, err)
		assert.Equal(mt, int32(-9098), stmt.Balance.Total)
		assert.Equal(mt, uint32(100000), stmt.Balance.Limit)
		require.Len(mt, stmt.LastTransactions, 2)
		assert.Equal(mt, models.TransactionKindDeposit, stmt.LastTransactions[0].Kind)
		assert.Equal(mt, models.TransactionKindWithdraw, stmt.LastTransactions[1].Kind)
		assert.True(mt, stmt.LastTransactions[0].CreatedAt.Equal(newer))
	})

	mt.Run("empty history is an empty list", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, walletDoc(2, 0, 80000)))

		stmt, err := repo.GetStatement(context.Background(), 2)
		require.NoError(mt, err)
		assert.NotNil(mt, stmt.LastTransactions)
		assert.Empty(mt, stmt.LastTransactions)
	})

	mt.Run("missing wallet", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetStatement(context.Background(), 9999)
		assert.ErrorIs(mt, err, ErrAccountNotFound)
	})
}

func TestLimitValidator(t *testing.T) {
	v := limitValidator()
	expr, ok := v["$expr"].(bson.M)
	require.True(t, ok)
	and, ok := expr["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 3)

	assert.Equal(t, bson.M{"$gte": bson.A{
		"$saldo.total",
		bson.M{"$multiply": bson.A{"$saldo.limite", -1}},
	}}, and[0])
	assert.Equal(t, bson.M{"$gte": bson.A{"$saldo.total", math.MinInt32}}, and[1])
	assert.Equal(t, bson.M{"$lte": bson.A{"$saldo.total", math.MaxInt32}}, and[2])
}

func TestTranslateMongoError(t *testing.T) {
	rejected := mongo.CommandError{Code: mongoDocumentValidationFailure, Name: "DocumentValidationFailure"}

	assert.ErrorIs(t, translateMongoError("op", rejected, 1), ErrBalanceOverflow)
	assert.ErrorIs(t, translateMongoError("op", rejected, -1), ErrLimitExceeded)
	assert.NotErrorIs(t, translateMongoError("op", rejected, -1), ErrBalanceOverflow)
	assert.True(t, IsTransient(translateMongoError("op", mongo.CommandError{Code: 91}, 1)))
}
