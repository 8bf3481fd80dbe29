package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveBackend keeps each note as <id>.json inside one folder of the user's
// Google Drive.
type DriveBackend struct {
	srv      *drive.Service
	folderID string
	fileIDs  map[string]string // note id -> drive file id
	logger   *log.Logger
}

// NewDriveBackend finds or creates folderName in the Drive root.
func NewDriveBackend(ctx context.Context, srv *drive.Service, folderName string, logger *log.Logger) (*DriveBackend, error) {
	d := &DriveBackend{srv: srv, fileIDs: map[string]string{}, logger: logger}
	if err := d.ensureFolder(ctx, folderName); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DriveBackend) logf(format string, v ...any) {
	if d.logger != nil {
		d.logger.Printf(format, v...)
	}
}

func quote(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`)
}

func (d *DriveBackend) ensureFolder(ctx context.Context, name string) error {
	q := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", quote(name), folderMimeType)
	r, err := d.srv.Files.List().Q(q).Spaces("drive").Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to access Google Drive: %w", err)
	}
	if len(r.Files) > 0 {
		d.folderID = r.Files[0].Id
		return nil
	}
	f, err := d.srv.Files.Create(&drive.File{Name: name, MimeType: folderMimeType}).
		Fields("id").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating drive folder %s: %w", name, err)
	}
	d.folderID = f.Id
	return nil
}

// syncFileIDs rebuilds the note id to file id map from the folder listing.
func (d *DriveBackend) syncFileIDs(ctx context.Context) error {
	q := fmt.Sprintf("'%s' in parents and name contains '.json' and trashed=false", quote(d.folderID))
	ids := map[string]string{}
	err := d.srv.Files.List().Q(q).Spaces("drive").
		Fields("nextPageToken, files(id, name)").
		Pages(ctx, func(r *drive.FileList) error {
			for _, f := range r.Files {
				if id, ok := strings.CutSuffix(f.Name, ".json"); ok {
					ids[id] = f.Id
				}
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("listing drive notes: %w", err)
	}
	d.fileIDs = ids
	return nil
}

func (d *DriveBackend) download(ctx context.Context, fileID string) (*Note, error) {
	resp, err := d.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeNote(b)
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

func (d *DriveBackend) GetAllNotes(ctx context.Context) ([]*Note, error) {
	if err := d.syncFileIDs(ctx); err != nil {
		return nil, err
	}
	var notes []*Note
	for id, fileID := range d.fileIDs {
		n, err := d.download(ctx, fileID)
		if err != nil {
			d.logf("skipping drive note %s: %v", id, err)
			continue
		}
		notes = append(notes, n)
	}
	sortByUpdated(notes)
	return notes, nil
}

func (d *DriveBackend) fileID(ctx context.Context, id string) (string, error) {
	if fid, ok := d.fileIDs[id]; ok {
		return fid, nil
	}
	if err := d.syncFileIDs(ctx); err != nil {
		return "", err
	}
	fid, ok := d.fileIDs[id]
	if !ok {
		return "", ErrNotFound
	}
	return fid, nil
}

func (d *DriveBackend) GetNote(ctx context.Context, id string) (*Note, error) {
	fid, err := d.fileID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := d.download(ctx, fid)
	if isNotFound(err) {
		delete(d.fileIDs, id)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading drive note %s: %w", id, err)
	}
	return n, nil
}

func (d *DriveBackend) SaveNote(ctx context.Context, n *Note) error {
	n.touch()
	return d.ImportNote(ctx, n)
}

// ImportNote uploads n as is, updating the existing file when there is one.
func (d *DriveBackend) ImportNote(ctx context.Context, n *Note) error {
	b, err := encodeNote(n)
	if err != nil {
		return fmt.Errorf("encoding note %s: %w", n.ID, err)
	}
	fid, err := d.fileID(ctx, n.ID)
	switch {
	case err == nil:
		_, err = d.srv.Files.Update(fid, &drive.File{}).Media(bytes.NewReader(b)).Context(ctx).Do()
	case errors.Is(err, ErrNotFound):
		var f *drive.File
		f, err = d.srv.Files.Create(&drive.File{
			Name:     n.ID + ".json",
			Parents:  []string{d.folderID},
			MimeType: "application/json",
		}).Media(bytes.NewReader(b)).Fields("id").Context(ctx).Do()
		if err == nil {
			d.fileIDs[n.ID] = f.Id
		}
	}
	if err != nil {
		return fmt.Errorf("uploading note %s: %w", n.ID, err)
	}
	return nil
}

func (d *DriveBackend) CreateNote(ctx context.Context) (*Note, error) {
	n := NewNote()
	if err := d.ImportNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (d *DriveBackend) DeleteNote(ctx context.Context, id string) error {
	fid, err := d.fileID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := d.srv.Files.Delete(fid).Context(ctx).Do(); err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting drive note %s: %w", id, err)
	}
	delete(d.fileIDs, id)
	return nil
}

func (d *DriveBackend) Close() error { return nil }
