package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved fields stored next to the document body. Body fields starting
// with an underscore are dropped when documents are read back.
const (
	mongoKey     = "_id"
	mongoParent  = "_parent"
	mongoDocID   = "_docId"
	mongoCreated = "_createdAt"
	mongoUpdated = "_updatedAt"
)

// MongoStore maps each collection kind onto a MongoDB collection.
// Subcollection documents carry their parent path so "users/u1/cart" and
// "users/u2/cart" share the "users_cart" collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	feed   *Feed
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	s := &MongoStore{client: client, db: client.Database(dbName)}
	s.feed = newFeed(s.list)
	return s
}

func (s *MongoStore) coll(path Path) *mongo.Collection {
	return s.db.Collection(path.Kind())
}

func mongoDocKey(path Path, id string) string {
	return string(path) + "/" + id
}

// encodeMongoDoc converts a JSON body into a BSON document with the
// reserved fields appended.
func encodeMongoDoc(path Path, id string, raw []byte, created, updated time.Time) (bson.D, error) {
	var body bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &body); err != nil {
		return nil, fmt.Errorf("docstore: convert document to bson: %w", err)
	}
	doc := make(bson.D, 0, len(body)+5)
	doc = append(doc,
		bson.E{Key: mongoKey, Value: mongoDocKey(path, id)},
		bson.E{Key: mongoParent, Value: path.Parent()},
		bson.E{Key: mongoDocID, Value: id},
		bson.E{Key: mongoCreated, Value: created.UTC()},
		bson.E{Key: mongoUpdated, Value: updated.UTC()},
	)
	for _, e := range body {
		if strings.HasPrefix(e.Key, "_") {
			continue
		}
		doc = append(doc, e)
	}
	return doc, nil
}

func decodeMongoDoc(raw bson.Raw) (Document, error) {
	var all bson.D
	if err := bson.Unmarshal(raw, &all); err != nil {
		return Document{}, fmt.Errorf("docstore: decode bson document: %w", err)
	}
	var d Document
	body := make(bson.D, 0, len(all))
	for _, e := range all {
		switch e.Key {
		case mongoDocID:
			d.ID, _ = e.Value.(string)
		case mongoCreated:
			d.CreateTime = raw.Lookup(mongoCreated).Time()
		case mongoUpdated:
			d.UpdateTime = raw.Lookup(mongoUpdated).Time()
		default:
			if !strings.HasPrefix(e.Key, "_") {
				body = append(body, e)
			}
		}
	}
	data, err := bson.MarshalExtJSON(body, false, false)
	if err != nil {
		return Document{}, fmt.Errorf("docstore: convert bson to json: %w", err)
	}
	d.data = data
	return d, nil
}

// bsonValue converts a Go value to the BSON value its JSON form maps to.
func bsonValue(v any) (interface{}, error) {
	raw, err := json.Marshal(map[string]any{"v": v})
	if err != nil {
		return nil, err
	}
	var wrapped bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &wrapped); err != nil {
		return nil, err
	}
	if len(wrapped) != 1 {
		return nil, fmt.Errorf("docstore: unexpected bson conversion of %T", v)
	}
	return wrapped[0].Value, nil
}

func (s *MongoStore) collectionFilter(path Path, filters []Filter) (bson.D, error) {
	filter := bson.D{{Key: mongoParent, Value: path.Parent()}}
	for _, f := range filters {
		if f.Field == "" || strings.HasPrefix(f.Field, "_") {
			return nil, fmt.Errorf("docstore: invalid filter field %q", f.Field)
		}
		v, err := bsonValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("docstore: encode filter %q: %w", f.Field, err)
		}
		filter = append(filter, bson.E{Key: f.Field, Value: v})
	}
	return filter, nil
}

func (s *MongoStore) find(ctx context.Context, path Path, filters []Filter) ([]Document, error) {
	filter, err := s.collectionFilter(path, filters)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: mongoDocID, Value: 1}})
	cursor, err := s.coll(path).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		d, err := decodeMongoDoc(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) list(ctx context.Context, path Path) ([]Document, error) {
	return s.find(ctx, path, nil)
}

func (s *MongoStore) check(path Path, id string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	return validateID(id)
}

func (s *MongoStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := s.check(path, id); err != nil {
		return Document{}, err
	}
	raw, err := s.coll(path).FindOne(ctx, bson.M{mongoKey: mongoDocKey(path, id)}).Raw()
	if err == mongo.ErrNoDocuments {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return decodeMongoDoc(raw)
}

func (s *MongoStore) createdAt(ctx context.Context, path Path, id string) (time.Time, error) {
	opts := options.FindOne().SetProjection(bson.M{mongoCreated: 1})
	raw, err := s.coll(path).FindOne(ctx, bson.M{mongoKey: mongoDocKey(path, id)}, opts).Raw()
	if err == mongo.ErrNoDocuments {
		return time.Now(), nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return raw.Lookup(mongoCreated).Time(), nil
}

func (s *MongoStore) replace(ctx context.Context, path Path, id string, raw []byte, now time.Time) error {
	created, err := s.createdAt(ctx, path, id)
	if err != nil {
		return err
	}
	doc, err := encodeMongoDoc(path, id, raw, created, now)
	if err != nil {
		return err
	}
	_, err = s.coll(path).ReplaceOne(ctx,
		bson.M{mongoKey: mongoDocKey(path, id)},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Set(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	if err := s.replace(ctx, path, id, raw, time.Now()); err != nil {
		return err
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *MongoStore) Create(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	now := time.Now()
	bdoc, err := encodeMongoDoc(path, id, raw, now, now)
	if err != nil {
		return err
	}
	if _, err := s.coll(path).InsertOne(ctx, bdoc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *MongoStore) Add(ctx context.Context, path Path, doc any) (string, error) {
	id := uuid.NewString()
	if err := s.Create(ctx, path, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, path Path, id string, updates ...Update) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	set := bson.D{{Key: mongoUpdated, Value: time.Now().UTC()}}
	unset := bson.D{}
	for _, u := range updates {
		if u.Field == "" || strings.HasPrefix(u.Field, "_") {
			return fmt.Errorf("docstore: invalid update field %q", u.Field)
		}
		if u.clear {
			unset = append(unset, bson.E{Key: u.Field, Value: ""})
			continue
		}
		v, err := bsonValue(u.Value)
		if err != nil {
			return fmt.Errorf("docstore: encode field %q: %w", u.Field, err)
		}
		set = append(set, bson.E{Key: u.Field, Value: v})
	}
	change := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		change = append(change, bson.E{Key: "$unset", Value: unset})
	}
	res, err := s.coll(path).UpdateOne(ctx, bson.M{mongoKey: mongoDocKey(path, id)}, change)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, path Path, id string) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	res, err := s.coll(path).DeleteOne(ctx, bson.M{mongoKey: mongoDocKey(path, id)})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		s.feed.notify(ctx, path)
	}
	return nil
}

func (s *MongoStore) Query(ctx context.Context, path Path, filters ...Filter) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	return s.find(ctx, path, filters)
}

// Batch runs inside a multi-document transaction, which needs a replica set
// deployment.
func (s *MongoStore) Batch(ctx context.Context, ops ...BatchOp) error {
	if err := validateOps(ops); err != nil {
		return err
	}
	encoded := make([][]byte, len(ops))
	for i, op := range ops {
		if op.delete {
			continue
		}
		raw, err := encode(op.Doc)
		if err != nil {
			return err
		}
		encoded[i] = raw
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()
		for i, op := range ops {
			if op.delete {
				if _, err := s.coll(op.Path).DeleteOne(sc, bson.M{mongoKey: mongoDocKey(op.Path, op.ID)}); err != nil {
					return nil, err
				}
				continue
			}
			if err := s.replace(sc, op.Path, op.ID, encoded[i], now); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	paths := make([]Path, 0, len(ops))
	for _, op := range ops {
		paths = append(paths, op.Path)
	}
	s.feed.notify(ctx, paths...)
	return nil
}

func (s *MongoStore) Subscribe(ctx context.Context, path Path) (*Subscription, error) {
	return s.feed.subscribe(ctx, path)
}

func (s *MongoStore) Close(ctx context.Context) error {
	s.feed.closeAll()
	return s.client.Disconnect(ctx)
}
