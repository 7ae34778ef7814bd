// Package client talks to a rowdb server over its HTTP API. One method
// per endpoint, taking the same request structs the server consumes.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rowdb/rowdb/internal/conn"
	"github.com/rowdb/rowdb/internal/db"
)

type Client struct {
	addr string
	http *http.Client
}

func New(addr string) *Client {
	return &Client{addr: strings.TrimSuffix(addr, "/"), http: &http.Client{}}
}

// response mirrors conn.Response with the payload left raw so callers
// can decode it into the shape they expect.
type response struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
}

func (c *Client) post(path string, body any) (*response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.addr+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res response
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if res.Status >= http.StatusBadRequest {
		return nil, fmt.Errorf("server error (%d): %s", res.Status, res.Message)
	}
	return &res, nil
}

func (c *Client) Create(name string) (*db.Table, error) {
	res, err := c.post("/create", conn.CreateRequest{Name: name})
	if err != nil {
		return nil, err
	}
	table := &db.Table{}
	if err := json.Unmarshal(res.Data, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (c *Client) CreateTable(req conn.CreateTableRequest) (*db.Table, error) {
	res, err := c.post("/create_table", req)
	if err != nil {
		return nil, err
	}
	table := &db.Table{}
	if err := json.Unmarshal(res.Data, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (c *Client) DropTable(name string) error {
	_, err := c.post("/drop_table", conn.DropTableRequest{Name: name})
	return err
}

func (c *Client) RenameTable(current_name, new_name string) error {
	_, err := c.post("/rename_table", conn.RenameTableRequest{
		CurrentName: current_name,
		NewName:     new_name,
	})
	return err
}

func (c *Client) InsertColumn(req conn.InsertColumnRequest) (db.Column, error) {
	res, err := c.post("/insert_column", req)
	if err != nil {
		return db.Column{}, err
	}
	var column db.Column
	if err := json.Unmarshal(res.Data, &column); err != nil {
		return db.Column{}, err
	}
	return column, nil
}

// InsertRow returns the stored row's string projections; Null cells
// come back as nil.
func (c *Client) InsertRow(req conn.InsertRowRequest) ([]*string, error) {
	res, err := c.post("/insert_row", req)
	if err != nil {
		return nil, err
	}
	values := []*string{}
	if err := json.Unmarshal(res.Data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Client) Select(req conn.SelectRequest) ([]db.Row, error) {
	res, err := c.post("/select", req)
	if err != nil {
		return nil, err
	}
	rows := []db.Row{}
	if err := json.Unmarshal(res.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) UpdateTable(req conn.UpdateTableRequest) (string, error) {
	res, err := c.post("/update_table", req)
	if err != nil {
		return "", err
	}
	var confirmation string
	if err := json.Unmarshal(res.Data, &confirmation); err != nil {
		return "", err
	}
	return confirmation, nil
}

func (c *Client) Tables() ([]*db.Table, error) {
	resp, err := c.http.Get(c.addr + "/tables")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res response
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if res.Status >= http.StatusBadRequest {
		return nil, fmt.Errorf("server error (%d): %s", res.Status, res.Message)
	}

	tables := []*db.Table{}
	if err := json.Unmarshal(res.Data, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Ping checks the health endpoint, so the shell can fail fast when the
// server is down.
func (c *Client) Ping() error {
	resp, err := c.http.Get(c.addr + "/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}
