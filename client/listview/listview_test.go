package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type course struct {
	Code string
	Name string
}

var courseFields = Fields[course]{
	"course_code": func(c course) string { return c.Code },
	"course_name": func(c course) string { return c.Name },
}

func makeCourses(t *testing.T, n int) []course {
	t.Helper()
	items := make([]course, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, course{
			Code: fmt.Sprintf("C%03d", i),
			Name: fmt.Sprintf("Course %d", i),
		})
	}
	return items
}

func Test_Compute_pagination(t *testing.T) {
	items := makeCourses(t, 25)

	tests := []struct {
		name          string
		page          int
		wantPage      int
		wantPageCount int
		wantLen       int
	}{
		{name: "first page full", page: 1, wantPageCount: 3, wantLen: 10},
		{name: "last page partial", page: 3, wantPageCount: 3, wantLen: 5},
		{name: "page above range clamps to last", page: 7, wantPageCount: 3, wantLen: 5},
		{name: "page below range clamps to first", page: 0, wantPageCount: 3, wantLen: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(items, courseFields, "", "", Asc, tt.page)
			assert.Equal(t, tt.wantPageCount, res.PageCount)
			assert.Len(t, res.PageItems, tt.wantLen)
			assert.Len(t, res.FilteredItems, 25)
		})
	}
}

func Test_Compute_empty(t *testing.T) {
	res := Compute(nil, courseFields, "", "", Asc, 1)
	assert.Equal(t, 0, res.PageCount)
	assert.Empty(t, res.PageItems)
	assert.Empty(t, res.FilteredItems)
}

func Test_Compute_pure(t *testing.T) {
	items := makeCourses(t, 25)
	res1 := Compute(items, courseFields, "course", "course_name", Desc, 2)
	res2 := Compute(items, courseFields, "course", "course_name", Desc, 2)
	assert.Equal(t, res1, res2)
}

func Test_Compute_filter(t *testing.T) {
	items := []course{
		{Code: "DIWA2110", Name: "Web Design"},
		{Code: "DBS1010", Name: "Database Systems"},
	}

	tests := []struct {
		name      string
		term      string
		wantNames []string
	}{
		{name: "empty term matches all", term: "", wantNames: []string{"Web Design", "Database Systems"}},
		{name: "substring matches one", term: "web", wantNames: []string{"Web Design"}},
		{name: "case-insensitive", term: "WEB", wantNames: []string{"Web Design"}},
		{name: "matches any declared field", term: "diwa", wantNames: []string{"Web Design"}},
		{name: "no match", term: "chemistry", wantNames: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(items, courseFields, tt.term, "", Asc, 1)
			names := make([]string, 0, len(res.FilteredItems))
			for _, c := range res.FilteredItems {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func Test_Compute_sort(t *testing.T) {
	items := []course{
		{Code: "C3", Name: "banana"},
		{Code: "C1", Name: "Apple"},
		{Code: "C2", Name: "apple"},
	}

	t.Run("asc is case-insensitive and stable", func(t *testing.T) {
		res := Compute(items, courseFields, "", "course_name", Asc, 1)
		codes := []string{res.PageItems[0].Code, res.PageItems[1].Code, res.PageItems[2].Code}
		assert.Equal(t, []string{"C1", "C2", "C3"}, codes)
	})
	t.Run("desc reverses", func(t *testing.T) {
		res := Compute(items, courseFields, "", "course_name", Desc, 1)
		assert.Equal(t, "banana", res.PageItems[0].Name)
	})
	t.Run("unknown key preserves original order", func(t *testing.T) {
		res := Compute(items, courseFields, "", "missing_field", Asc, 1)
		codes := []string{res.PageItems[0].Code, res.PageItems[1].Code, res.PageItems[2].Code}
		assert.Equal(t, []string{"C3", "C1", "C2"}, codes)
	})
	t.Run("source slice not reordered", func(t *testing.T) {
		Compute(items, courseFields, "", "course_name", Asc, 1)
		assert.Equal(t, "C3", items[0].Code)
	})
}

func Test_View_sortToggle(t *testing.T) {
	v := NewView(courseFields)
	v.SetItems(makeCourses(t, 5))

	v.SetSort("course_name")
	assert.Equal(t, "course_name", v.SortKey())
	assert.Equal(t, Asc, v.SortDirection())

	v.SetSort("course_name")
	assert.Equal(t, Desc, v.SortDirection())

	v.SetSort("course_code") // new key resets direction
	assert.Equal(t, "course_code", v.SortKey())
	assert.Equal(t, Asc, v.SortDirection())
}

func Test_View_pageResets(t *testing.T) {
	v := NewView(courseFields)
	v.SetItems(makeCourses(t, 25))

	v.SetPage(3)
	assert.Equal(t, 3, v.Page())

	v.SetSearch("course")
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	v.SetSort("course_name")
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	v.SetItems(makeCourses(t, 12))
	assert.Equal(t, 1, v.Page())
}

func Test_View_setPageClamps(t *testing.T) {
	v := NewView(courseFields)
	v.SetItems(makeCourses(t, 25))

	v.SetPage(100)
	assert.Equal(t, 3, v.Page())

	v.SetPage(-4)
	assert.Equal(t, 1, v.Page())

	v.SetItems(nil)
	v.SetPage(5) // pageCount 0
	assert.Equal(t, 1, v.Page())
}
