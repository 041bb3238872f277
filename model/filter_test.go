package model

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterFromDocument(t *testing.T) {
	t.Run("nil document yields an empty conjunction", func(t *testing.T) {
		filter := FilterFromDocument(nil)
		group, ok := filter.(*FilterGroup)
		if !ok {
			t.Fatalf("filter: got %T, want *FilterGroup", filter)
		}
		if group.Operator != "And" || len(group.Children) != 0 {
			t.Errorf("group: got %+v, want empty And", group)
		}
	})

	t.Run("a document with an Attribute is a clause defaulting to Equals", func(t *testing.T) {
		filter := FilterFromDocument(Document{"Attribute": "Read", "Value": false})
		clause, ok := filter.(*FilterClause)
		if !ok {
			t.Fatalf("filter: got %T, want *FilterClause", filter)
		}
		if clause.Attribute != "Read" || clause.Operation != OpEquals || clause.Value != false {
			t.Errorf("clause: got %+v", clause)
		}
	})

	t.Run("groups parse recursively and unknown operators fall back to And", func(t *testing.T) {
		filter := FilterFromDocument(Document{
			"Operator": "Xor",
			"Children": []interface{}{
				map[string]interface{}{"Attribute": "Read", "Operation": "NotEquals", "Value": true},
				map[string]interface{}{
					"Operator": "Or",
					"Children": []interface{}{
						map[string]interface{}{"Attribute": "ServiceName", "Value": "Portals"},
					},
				},
			},
		})
		group, ok := filter.(*FilterGroup)
		if !ok {
			t.Fatalf("filter: got %T, want *FilterGroup", filter)
		}
		if group.Operator != "And" {
			t.Errorf("operator: got %s, want And", group.Operator)
		}
		if len(group.Children) != 2 {
			t.Fatalf("children: got %d, want 2", len(group.Children))
		}
		inner, ok := group.Children[1].(*FilterGroup)
		if !ok || inner.Operator != "Or" || len(inner.Children) != 1 {
			t.Errorf("inner group: got %+v", group.Children[1])
		}
	})
}

func TestFilterToBSON(t *testing.T) {
	cases := []struct {
		operation string
		want      bson.M
	}{
		{OpEquals, bson.M{"read": false}},
		{OpNotEquals, bson.M{"read": bson.M{"$ne": false}}},
		{OpLessThan, bson.M{"read": bson.M{"$lt": false}}},
		{OpGreaterThanOrEquals, bson.M{"read": bson.M{"$gte": false}}},
		{OpIsNull, bson.M{"read": nil}},
		{OpIsNotNull, bson.M{"read": bson.M{"$ne": nil}}},
	}
	for _, tc := range cases {
		t.Run(tc.operation, func(t *testing.T) {
			clause := &FilterClause{Attribute: "Read", Operation: tc.operation, Value: false}
			if got := clause.ToBSON(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ToBSON: got %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("attributes map onto stored field names", func(t *testing.T) {
		clause := &FilterClause{Attribute: "RecipientID", Operation: OpEquals, Value: "user-1"}
		want := bson.M{"recipientId": "user-1"}
		if got := clause.ToBSON(); !reflect.DeepEqual(got, want) {
			t.Errorf("ToBSON: got %v, want %v", got, want)
		}
	})

	t.Run("string matching renders as regex", func(t *testing.T) {
		clause := &FilterClause{Attribute: "Title", Operation: OpStartsWith, Value: "Weekly"}
		want := bson.M{"title": bson.M{"$regex": "^Weekly"}}
		if got := clause.ToBSON(); !reflect.DeepEqual(got, want) {
			t.Errorf("ToBSON: got %v, want %v", got, want)
		}
	})

	t.Run("groups render as $and / $or", func(t *testing.T) {
		group := &FilterGroup{Operator: "Or", Children: []Filter{
			&FilterClause{Attribute: "Read", Operation: OpEquals, Value: false},
			&FilterClause{Attribute: "Read", Operation: OpEquals, Value: true},
		}}
		want := bson.M{"$or": []bson.M{{"read": false}, {"read": true}}}
		if got := group.ToBSON(); !reflect.DeepEqual(got, want) {
			t.Errorf("ToBSON: got %v, want %v", got, want)
		}
	})

	t.Run("an empty group matches everything", func(t *testing.T) {
		if got := NewAndFilter().ToBSON(); !reflect.DeepEqual(got, bson.M{}) {
			t.Errorf("ToBSON: got %v, want empty", got)
		}
	})
}

func TestScopeToRecipient(t *testing.T) {
	t.Run("overwrites an existing clause even when nested", func(t *testing.T) {
		filter := NewAndFilter(
			&FilterClause{Attribute: "Read", Operation: OpEquals, Value: false},
			NewAndFilter(
				&FilterClause{Attribute: "RecipientID", Operation: OpNotEquals, Value: "someone-else"},
			),
		)

		scoped := ScopeToRecipient(filter, "user-1")

		clause := findRecipientClause(scoped)
		if clause == nil {
			t.Fatal("no RecipientID clause after scoping")
		}
		if clause.Operation != OpEquals || clause.Value != "user-1" {
			t.Errorf("clause: got %+v, want Equals user-1", clause)
		}
		root, _ := scoped.(*FilterGroup)
		if root == nil || len(root.Children) != 2 {
			t.Errorf("root must be untouched, got %+v", scoped)
		}
	})

	t.Run("injects into an And root", func(t *testing.T) {
		filter := NewAndFilter(&FilterClause{Attribute: "Read", Operation: OpEquals, Value: false})

		scoped := ScopeToRecipient(filter, "user-1")

		root, ok := scoped.(*FilterGroup)
		if !ok || len(root.Children) != 2 {
			t.Fatalf("root: got %+v, want And with 2 children", scoped)
		}
		clause, ok := root.Children[1].(*FilterClause)
		if !ok || clause.Attribute != "RecipientID" || clause.Value != "user-1" {
			t.Errorf("injected clause: got %+v", root.Children[1])
		}
	})

	t.Run("wraps anything else in a fresh conjunction", func(t *testing.T) {
		filter := &FilterGroup{Operator: "Or", Children: []Filter{
			&FilterClause{Attribute: "Read", Operation: OpEquals, Value: false},
		}}

		scoped := ScopeToRecipient(filter, "user-1")

		root, ok := scoped.(*FilterGroup)
		if !ok || root.Operator != "And" || len(root.Children) != 2 {
			t.Fatalf("root: got %+v, want And wrapping the Or group", scoped)
		}
		if root.Children[0] != Filter(filter) {
			t.Error("original filter must stay as the first child")
		}
		clause, ok := root.Children[1].(*FilterClause)
		if !ok || clause.Attribute != "RecipientID" || clause.Value != "user-1" {
			t.Errorf("scope clause: got %+v", root.Children[1])
		}
	})
}

func TestPagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		pagination := PaginationFromDocument(nil)
		want := Pagination{TotalRecords: -1, TotalPages: 0, PageSize: 20, PageNumber: 1}
		if pagination != want {
			t.Errorf("pagination: got %+v, want %+v", pagination, want)
		}
	})

	t.Run("unusable values fall back to the defaults", func(t *testing.T) {
		pagination := PaginationFromDocument(Document{"PageSize": "many", "PageNumber": float64(-3)})
		if pagination.PageSize != 20 || pagination.PageNumber != 1 {
			t.Errorf("pagination: got %+v", pagination)
		}
	})

	t.Run("json-decoded numbers are accepted", func(t *testing.T) {
		pagination := PaginationFromDocument(Document{"PageSize": float64(50), "PageNumber": float64(3)})
		if pagination.PageSize != 50 || pagination.PageNumber != 3 {
			t.Errorf("pagination: got %+v", pagination)
		}
	})

	t.Run("total pages arithmetic", func(t *testing.T) {
		cases := []struct {
			total    int64
			pageSize int
			want     int
		}{
			{0, 20, 0},
			{-1, 20, 0},
			{1, 20, 1},
			{20, 20, 1},
			{21, 20, 2},
			{45, 20, 3},
		}
		for _, tc := range cases {
			if got := TotalPages(tc.total, tc.pageSize); got != tc.want {
				t.Errorf("TotalPages(%d, %d): got %d, want %d", tc.total, tc.pageSize, got, tc.want)
			}
		}
	})
}

func TestSortByTimeDescending(t *testing.T) {
	sort := SortByTimeDescending()
	if sort.Attribute != "Time" || !sort.Descending {
		t.Errorf("sort: got %+v, want Time descending", sort)
	}
	doc := sort.ToClientDocument()
	if doc.GetString("Mode") != "Descending" {
		t.Errorf("mode: got %v, want Descending", doc["Mode"])
	}
}
