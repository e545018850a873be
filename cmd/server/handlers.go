package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edusuite/schoolms/pkg/dbrouter"
	"github.com/edusuite/schoolms/pkg/trust"
)

// Domain handlers stay deliberately thin: they receive data access
// exclusively through the registry's scope-driven accessors and never
// see connection plumbing or tenant routing.

func listTrusts(registry *dbrouter.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db, err := registry.QueryFor(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		rows, err := db.Query(r.Context(),
			`SELECT id, key, name, status, database_name, created_at FROM trusts ORDER BY key`)
		if err != nil {
			writeError(w, err)
			return
		}
		defer rows.Close()

		var trusts []trust.Trust
		for rows.Next() {
			var t trust.Trust
			if err := rows.Scan(&t.ID, &t.Key, &t.Name, &t.Status, &t.DatabaseName, &t.CreatedAt); err != nil {
				writeError(w, err)
				return
			}
			trusts = append(trusts, t)
		}
		if err := rows.Err(); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"trusts": trusts})
	}
}

func countStudents(registry *dbrouter.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db, err := registry.QueryFor(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		var count int64
		if err := db.QueryRow(r.Context(), `SELECT count(*) FROM students`).Scan(&count); err != nil {
			writeError(w, err)
			return
		}

		tc := trust.MustFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"trust": tc.Key(), "students": count})
	}
}

func createStudent(registry *dbrouter.Registry) http.HandlerFunc {
	type request struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ClassName string `json:"class_name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_payload"})
			return
		}

		id := uuid.New()
		// Enrollment touches two tables; the accessor gives
		// all-or-nothing semantics on the trust's own database.
		err := registry.TransactionFor(r.Context(), func(tx pgx.Tx) error {
			if _, err := tx.Exec(r.Context(),
				`INSERT INTO students (id, first_name, last_name) VALUES ($1, $2, $3)`,
				id, req.FirstName, req.LastName); err != nil {
				return err
			}
			_, err := tx.Exec(r.Context(),
				`INSERT INTO enrollments (student_id, class_name) VALUES ($1, $2)`,
				id, req.ClassName)
			return err
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	// Reuse the middleware's taxonomy mapping for accessor failures so
	// handlers cannot leak internals through ad hoc status codes.
	trust.WriteError(w, err)
}
