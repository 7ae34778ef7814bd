package conn

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/internal/query"
)

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// don't manually set this. it comes from the client
	ReqId int `json:"__rowdb_client_req_id__"`
}

func NewErrorResponse(status int, err string) Response {
	return Response{Message: err, Status: status}
}

func NewResponse(status int, message string, data any) Response {
	return Response{Data: data, Message: message, Status: status}
}

// errorResponse maps engine errors onto their HTTP status; anything
// without one (snapshot write failures) is a 500.
func errorResponse(err error) Response {
	if statused, ok := err.(interface{ Status() int }); ok {
		return NewErrorResponse(statused.Status(), err.Error())
	}
	return NewErrorResponse(http.StatusInternalServerError, err.Error())
}

type CreateRequest struct {
	Name string `json:"name"`
}

func CreateReqHandler(store *db.Store, raw []byte) Response {
	var req CreateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return NewErrorResponse(http.StatusBadRequest, "table name cannot be empty")
	}

	table := db.NewTable(req.Name)
	if err := store.Create(table); err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusCreated, fmt.Sprintf("Created table %s", table.Name), table)
}

type InsertColumnRequest struct {
	TableName  string      `json:"table_name"`
	Key        string      `json:"key"`
	PrimaryKey bool        `json:"primary_key"`
	NonNull    bool        `json:"non_null"`
	Unique     bool        `json:"unique"`
	ForeignKey []db.Column `json:"foreign_key,omitempty"`
}

func (req InsertColumnRequest) column() (db.Column, error) {
	if req.Key == "" {
		return db.Column{}, db.NewError(http.StatusBadRequest, "column key cannot be empty")
	}
	return db.NewColumn(req.Key, req.PrimaryKey, req.NonNull, req.Unique, req.ForeignKey)
}

type CreateTableRequest struct {
	Name                 string                `json:"name"`
	InsertColumnRequests []InsertColumnRequest `json:"insert_column_requests"`
}

func CreateTableReqHandler(store *db.Store, raw []byte) Response {
	var req CreateTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return NewErrorResponse(http.StatusBadRequest, "table name cannot be empty")
	}

	// build the whole table before it becomes visible, so a bad column
	// request creates nothing
	table := db.NewTable(req.Name)
	for _, col_req := range req.InsertColumnRequests {
		column, err := col_req.column()
		if err != nil {
			return errorResponse(err)
		}
		if err := table.AddColumn(column); err != nil {
			return errorResponse(err)
		}
	}

	if err := store.Create(table); err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusCreated,
		fmt.Sprintf("Created table %s with %d columns", table.Name, len(table.Columns)), table)
}

type DropTableRequest struct {
	Name string `json:"name"`
}

func DropTableReqHandler(store *db.Store, raw []byte) Response {
	var req DropTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	dropped, err := store.Drop(req.Name)
	if err != nil {
		return errorResponse(err)
	}
	if !dropped {
		return errorResponse(db.ErrTableNotFound(req.Name))
	}

	return NewResponse(http.StatusOK, fmt.Sprintf("Dropped table %s", req.Name),
		fmt.Sprintf("table %s dropped", req.Name))
}

type RenameTableRequest struct {
	CurrentName string `json:"current_name"`
	NewName     string `json:"new_name"`
}

func RenameTableReqHandler(store *db.Store, raw []byte) Response {
	var req RenameTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if req.NewName == "" {
		return NewErrorResponse(http.StatusBadRequest, "new table name cannot be empty")
	}

	if _, err := store.Rename(req.CurrentName, req.NewName); err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusOK,
		fmt.Sprintf("Renamed table %s to %s", req.CurrentName, req.NewName),
		fmt.Sprintf("table %s renamed to %s", req.CurrentName, req.NewName))
}

func InsertColumnReqHandler(store *db.Store, raw []byte) Response {
	var req InsertColumnRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	column, err := req.column()
	if err != nil {
		return errorResponse(err)
	}

	created, err := store.InsertColumn(req.TableName, column)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusCreated,
		fmt.Sprintf("Inserted column %s into table %s", created.Key, req.TableName), created)
}

type InsertRowRequest struct {
	TableName string `json:"table_name"`
	Row       db.Row `json:"row"`
}

func InsertRowReqHandler(store *db.Store, raw []byte) Response {
	var req InsertRowRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	inserted, err := store.InsertRow(req.TableName, req.Row)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusCreated,
		fmt.Sprintf("Inserted row into table %s", req.TableName), inserted.Strings())
}

type SelectRequest struct {
	TableName string           `json:"table_name"`
	Columns   []string         `json:"columns,omitempty"` // nil means select star
	Condition *query.Condition `json:"condition,omitempty"`
}

func SelectReqHandler(store *db.Store, raw []byte) Response {
	var req SelectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, ok := store.Get(req.TableName)
	if !ok {
		return errorResponse(db.ErrTableNotFound(req.TableName))
	}

	rows, err := query.Select(table, req.Columns, req.Condition)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusOK,
		fmt.Sprintf("Selected %d rows from table %s", len(rows), table.Name), rows)
}

type UpdateTableRequest struct {
	TableName string               `json:"table_name"`
	Condition *query.Condition     `json:"condition,omitempty"`
	Updates   []query.ColumnUpdate `json:"updates"`
}

func UpdateTableReqHandler(store *db.Store, raw []byte) Response {
	var req UpdateTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	var updated []db.Row
	err := store.ReplaceTable(req.TableName, func(t *db.Table) (*db.Table, error) {
		rebuilt, rows, err := query.Update(t, req.Condition, req.Updates)
		updated = rows
		return rebuilt, err
	})
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusOK,
		fmt.Sprintf("Updated %d rows in table %s", len(updated), req.TableName),
		fmt.Sprintf("%d rows updated", len(updated)))
}

func ListTablesReqHandler(store *db.Store) Response {
	tables := store.GetAll()
	return NewResponse(http.StatusOK, fmt.Sprintf("%d tables", len(tables)), tables)
}
