package diary

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
)

type memoryRepo struct {
	items  []*Diary
	nextID uint
	err    error
}

func (m *memoryRepo) Create(_ context.Context, d *Diary) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	d.ID = m.nextID
	m.items = append(m.items, d)
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, userID, id uint) (*Diary, error) {
	for _, d := range m.items {
		if d.ID == id && d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID uint, f Filter) ([]*Diary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*Diary
	for _, d := range m.items {
		if d.UserID != userID {
			continue
		}
		if !f.From.IsZero() && d.DiaryDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && d.DiaryDate.After(f.To) {
			continue
		}
		out = append(out, d)
	}
	// ids grow with creation time
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DiaryDate.Equal(out[j].DiaryDate) {
			return out[i].DiaryDate.After(out[j].DiaryDate)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, userID, id uint) (bool, error) {
	for i, d := range m.items {
		if d.ID == id && d.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) ImagePaths(context.Context) ([]string, error) {
	var out []string
	for _, d := range m.items {
		if d.ImagePath != "" {
			out = append(out, d.ImagePath)
		}
	}
	return out, nil
}

func (m *memoryRepo) CountImageReferences(_ context.Context, path string) (int64, error) {
	var n int64
	for _, d := range m.items {
		if d.ImagePath == path {
			n++
		}
	}
	return n, nil
}

type recordingRemover struct {
	paths []string
	err   error
}

func (r *recordingRemover) DeleteImage(_ context.Context, p string) error {
	r.paths = append(r.paths, p)
	return r.err
}

type fakeCatalog struct {
	files   []string
	deleted []string
	failOn  string
}

func (f *fakeCatalog) List(context.Context) ([]string, error) {
	return f.files, nil
}

func (f *fakeCatalog) Delete(_ context.Context, name string) error {
	if name == f.failOn {
		return errors.New("permission denied")
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
