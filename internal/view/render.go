package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"picon/internal/dataset"
	"picon/internal/format"
	"picon/internal/model"
)

const symbolWidth = 6

type statItem struct {
	name  string
	value string
	up    bool
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteByte('\n')

	if n, ok := m.app.Notice(); ok {
		b.WriteString(noticeStyle(n.Level).Render(n.Text))
		b.WriteByte('\n')
	}

	switch m.panel {
	case PanelLatest:
		b.WriteString(m.renderLatest())
	case PanelStats:
		b.WriteString(m.renderStats())
	case PanelAbout:
		b.WriteString(renderAbout())
	}

	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"1 Latest", "2 Stats", "3 About"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if Panel(i) == m.panel {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if kind, ok := m.panel.kind(); ok && m.app.IsFetchInFlight(kind) {
		row += "  " + refreshStyle.Render("refreshing…")
	}
	return row
}

// column right-aligns label in width bytes, then styles it.
func column(label string, width int, active bool) string {
	padded := fmt.Sprintf("%*s", width, label)
	if active {
		return activeColStyle.Render(padded)
	}
	return padded
}

func (m Model) renderLatest() string {
	engine := m.app.Dataset()
	assets := engine.Assets()
	stats := engine.Stats()
	key := engine.SortKey()

	updated := stats.ComputedAt
	if snap := engine.Snapshot(); snap != nil && !snap.Time().IsZero() {
		updated = snap.Time()
	}

	header := strings.Join([]string{
		column("★ ", 0, key == dataset.SortMarker),
		column("#", 5, key == dataset.SortRank),
		"  " + column(fmt.Sprintf("%-*s", symbolWidth+1, "Symbol"), symbolWidth+1, key == dataset.SortSymbol),
		column(fmt.Sprintf("Price(%s)", format.Elapsed(updated, m.now())), 14, key == dataset.SortPrice),
		column(fmt.Sprintf("24h(%d%%)", stats.UpPercent24h()), 11, key == dataset.SortChange24h),
		column(fmt.Sprintf("7d(%d%%)", stats.UpPercent7d()), 11, key == dataset.SortChange7d),
	}, "")

	var b strings.Builder
	b.WriteString(headerStyle(stats.UpPercent24h() >= 50).Render(header))
	b.WriteByte('\n')

	if len(assets) == 0 {
		b.WriteString(helpStyle.Render("no data yet, press r to refresh"))
		return b.String()
	}

	end := min(m.offset+m.pageSize(), len(assets))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderAsset(assets[i], i == m.cursor))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderAsset(a model.Asset, selected bool) string {
	mark := "  "
	if m.app.IsMarked(a.Symbol) {
		mark = markStyle.Render("★ ")
	}

	symbol := format.Symbol(a.Symbol, symbolWidth)
	symbol += strings.Repeat(" ", max(symbolWidth+1-lipgloss.Width(symbol), 0))

	line := fmt.Sprintf("%5d  %s%14s%11s%11s",
		a.Rank,
		symbol,
		format.PrettyPrice(a.Price()),
		format.Percent(a.Change24h()),
		format.Percent(a.Change7d()),
	)

	style := changeStyle(a.Change24h() >= 0)
	if selected {
		style = style.Background(highlightBG)
	}
	return mark + style.Render(line)
}

func statItems(stats *model.MarketStats) []statItem {
	if stats == nil {
		return nil
	}

	items := make([]statItem, 0, len(stats.Market)+6)
	for _, mk := range stats.Market {
		items = append(items, statItem{
			name:  mk.Name,
			value: fmt.Sprintf("%s (%s)", format.PrettyPrice(mk.Value), format.Percent(mk.Percent)),
			up:    mk.Percent >= 0,
		})
	}

	c := stats.Crypto
	if len(c.GreedFear.Data) == 2 {
		items = append(items, statItem{
			name:  "Greed/Fear (today/yesterday)",
			value: fmt.Sprintf("%s/%s", c.GreedFear.Data[0].Value, c.GreedFear.Data[1].Value),
			up:    c.GreedFear.Data[0].Level() >= 50,
		})
	}
	if c.Global.TotalMarketCapUSD == 0 && c.GasFee.Ethereum == 0 {
		return items
	}

	items = append(items,
		statItem{name: "Total market cap (USD)", value: format.Commas(c.Global.TotalMarketCapUSD), up: true},
		statItem{name: "24h volume (USD)", value: format.Commas(c.Global.Total24hVolumeUSD), up: true},
		statItem{
			name:  "BTC dominance",
			value: format.Percent(c.Global.BitcoinPercentageOfMarketCap),
			up:    c.Global.BitcoinPercentageOfMarketCap >= 50,
		},
		statItem{
			name:  "BTC fee (slow/normal/fast)",
			value: fmt.Sprintf("%d/%d/%d vSat", c.GasFee.Bitcoin[0], c.GasFee.Bitcoin[1], c.GasFee.Bitcoin[2]),
			up:    true,
		},
		statItem{name: "ETH gas", value: format.Gwei(c.GasFee.Ethereum), up: true},
	)
	return items
}

func (m Model) renderStats() string {
	items := statItems(m.app.MarketStats())
	if len(items) == 0 {
		return helpStyle.Render("no stats yet, press r to refresh")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-30s%s", "Index", "Value")))
	b.WriteByte('\n')

	end := min(m.offset+m.pageSize(), len(items))
	for i := m.offset; i < end; i++ {
		item := items[i]
		style := changeStyle(item.up)
		if i == m.cursor {
			style = style.Background(highlightBG)
		}
		b.WriteString(style.Render(fmt.Sprintf("%-30s%s", item.name, item.value)))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderAbout() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("picon "+Version),
		"",
		"Cryptocurrency prices from CoinMarketCap with market indices,",
		"cached locally for offline start.",
		"",
		"The program is provided AS IS with NO WARRANTY OF ANY KIND.",
	)
}

func (m Model) help() string {
	switch m.panel {
	case PanelLatest:
		return "r refresh · m/n/s/p/h/d sort · space mark · j/k move · g top · 1/2/3 panels · q quit"
	case PanelStats:
		return "r refresh · j/k move · g top · 1/2/3 panels · q quit"
	default:
		return "1/2/3 panels · q quit"
	}
}
