// Package store persists detection results and interventions in a local
// bbolt file. The engine never depends on storage succeeding: callers log
// and swallow errors from this package.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/ananyev/kithwatch/internal/model"
)

var (
	bucketAssessments   = []byte("assessments")
	bucketInterventions = []byte("interventions")
)

// Store is a bbolt-backed record store. Keys are "<userID>/<uuid>"; values
// are JSON.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketAssessments, bucketInterventions} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAssessment stores a full detection result and returns the record id.
func (s *Store) SaveAssessment(res model.DetectionResult) (string, error) {
	return s.put(bucketAssessments, res.Assessment.UserID, res)
}

// SaveIntervention stores an intervention for a user and returns the record id.
func (s *Store) SaveIntervention(userID string, iv model.Intervention) (string, error) {
	return s.put(bucketInterventions, userID, iv)
}

// Assessments returns all stored detection results for a user, in key order.
func (s *Store) Assessments(userID string) ([]model.DetectionResult, error) {
	var out []model.DetectionResult
	err := s.list(bucketAssessments, userID, func(v []byte) error {
		var res model.DetectionResult
		if err := json.Unmarshal(v, &res); err != nil {
			return err
		}
		out = append(out, res)
		return nil
	})
	return out, err
}

// Interventions returns all stored interventions for a user, in key order.
func (s *Store) Interventions(userID string) ([]model.Intervention, error) {
	var out []model.Intervention
	err := s.list(bucketInterventions, userID, func(v []byte) error {
		var iv model.Intervention
		if err := json.Unmarshal(v, &iv); err != nil {
			return err
		}
		out = append(out, iv)
		return nil
	})
	return out, err
}

func (s *Store) put(bucket []byte, userID string, record any) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	id := uuid.NewString()
	value, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(userID+"/"+id), value)
	})
	if err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return id, nil
}

func (s *Store) list(bucket []byte, userID string, fn func(v []byte) error) error {
	prefix := []byte(userID + "/")
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, v = c.Next() {
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	})
}
