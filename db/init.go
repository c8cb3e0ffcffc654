package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
)

func InitHealthCoreDB(ctx context.Context, mongo odm.MongoClient, dbName string) error {
	err := odm.EnsureIndexes[HealthTipModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[ProductModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[FaqModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[ChatModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[FeedbackModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[UserProfileModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	return nil
}
