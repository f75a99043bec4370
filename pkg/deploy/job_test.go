package deploy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/magedeploy/pkg/deploy"
	"github.com/walteh/magedeploy/pkg/theme"
)

func node(vendor, name string, area theme.Area) *theme.Node {
	return &theme.Node{ID: theme.ID{Vendor: vendor, Name: name}, Area: area}
}

func jobStrings(jobs []deploy.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.String()
	}
	return out
}

func TestPlanJobsMatrix(t *testing.T) {
	nodes := []*theme.Node{
		node("A", "one", theme.AreaFrontend),
		node("B", "two", theme.AreaFrontend),
	}
	locales := []theme.Locale{"en_US", "nl_NL"}

	jobs := deploy.PlanJobs(nodes, locales)

	assert.Equal(t, []string{
		"frontend/A/one/en_US",
		"frontend/A/one/nl_NL",
		"frontend/B/two/en_US",
		"frontend/B/two/nl_NL",
	}, jobStrings(jobs), "matrix should iterate themes outermost, locales innermost")
}

func TestPlanJobsSameThemeAcrossAreas(t *testing.T) {
	nodes := []*theme.Node{
		node("Magento", "backend", theme.AreaFrontend),
		node("Magento", "backend", theme.AreaAdminhtml),
	}

	jobs := deploy.PlanJobs(nodes, []theme.Locale{"en_US"})

	assert.Equal(t, []string{
		"frontend/Magento/backend/en_US",
		"adminhtml/Magento/backend/en_US",
	}, jobStrings(jobs), "the same theme identity in two areas is two jobs")
}

func TestPlanJobsDeduplicates(t *testing.T) {
	nodes := []*theme.Node{node("A", "one", theme.AreaFrontend)}

	jobs := deploy.PlanJobs(nodes, []theme.Locale{"en_US", "en_US", "nl_NL"})

	assert.Equal(t, []string{
		"frontend/A/one/en_US",
		"frontend/A/one/nl_NL",
	}, jobStrings(jobs), "repeated locales should not produce duplicate jobs")
}

func TestPlanJobsEmpty(t *testing.T) {
	assert.Empty(t, deploy.PlanJobs(nil, []theme.Locale{"en_US"}))
	assert.Empty(t, deploy.PlanJobs([]*theme.Node{node("A", "one", theme.AreaFrontend)}, nil))
}

func TestFilterThemes(t *testing.T) {
	nodes := []*theme.Node{
		node("Hyva", "default", theme.AreaFrontend),
		node("Custom", "shop", theme.AreaFrontend),
		node("Magento", "luma", theme.AreaFrontend),
	}

	t.Run("empty_filter_keeps_all", func(t *testing.T) {
		got, err := deploy.FilterThemes(nodes, nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("narrows_to_requested", func(t *testing.T) {
		got, err := deploy.FilterThemes(nodes, []theme.ID{{Vendor: "Custom", Name: "shop"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Custom/shop", got[0].ID.String())
	})

	t.Run("partial_match_is_fine", func(t *testing.T) {
		got, err := deploy.FilterThemes(nodes, []theme.ID{
			{Vendor: "Custom", Name: "shop"},
			{Vendor: "Acme", Name: "missing"},
		})
		require.NoError(t, err, "one hit is enough to proceed")
		assert.Len(t, got, 1)
	})

	t.Run("no_match_is_an_error", func(t *testing.T) {
		_, err := deploy.FilterThemes(nodes, []theme.ID{{Vendor: "Acme", Name: "missing"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Acme/missing", "the error should name the filters that missed")
	})
}
