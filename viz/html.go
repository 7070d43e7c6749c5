package viz

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

var pageTemplate = template.Must(template.New("topology").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Topology Visualization</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
<style>
body { margin: 0; font-family: 'Segoe UI', Tahoma, sans-serif; overflow: hidden; }
#graph { width: 100vw; height: 100vh; background: #f8f9fa; }
.node { cursor: pointer; stroke: #fff; stroke-width: 2px; }
.link { stroke: #999; stroke-opacity: 0.6; stroke-width: 2px; }
.node-label { font-size: 12px; font-weight: bold; pointer-events: none; }
.link-label { font-size: 10px; fill: #666; pointer-events: none; }
</style>
</head>
<body>
<svg id="graph"></svg>
<script>
const data = {{.Data}};
const width = window.innerWidth, height = window.innerHeight;
const color = d3.scaleOrdinal(d3.schemeCategory10);

const svg = d3.select("#graph").attr("width", width).attr("height", height);

const simulation = d3.forceSimulation(data.nodes)
    .force("link", d3.forceLink(data.links).id(d => d.id).distance(120))
    .force("charge", d3.forceManyBody().strength(-400))
    .force("center", d3.forceCenter(width / 2, height / 2));

const link = svg.append("g").selectAll("line")
    .data(data.links).join("line").attr("class", "link");

const linkLabel = svg.append("g").selectAll("text")
    .data(data.links).join("text").attr("class", "link-label").text(d => d.label);

const node = svg.append("g").selectAll("circle")
    .data(data.nodes).join("circle")
    .attr("class", "node").attr("r", 16).attr("fill", d => color(d.type))
    .call(d3.drag()
        .on("start", (e, d) => { if (!e.active) simulation.alphaTarget(0.3).restart(); d.fx = d.x; d.fy = d.y; })
        .on("drag", (e, d) => { d.fx = e.x; d.fy = e.y; })
        .on("end", (e, d) => { if (!e.active) simulation.alphaTarget(0); d.fx = null; d.fy = null; }));

const nodeLabel = svg.append("g").selectAll("text")
    .data(data.nodes).join("text").attr("class", "node-label").text(d => d.label);

simulation.on("tick", () => {
    link.attr("x1", d => d.source.x).attr("y1", d => d.source.y)
        .attr("x2", d => d.target.x).attr("y2", d => d.target.y);
    linkLabel.attr("x", d => (d.source.x + d.target.x) / 2)
        .attr("y", d => (d.source.y + d.target.y) / 2);
    node.attr("cx", d => d.x).attr("cy", d => d.y);
    nodeLabel.attr("x", d => d.x + 20).attr("y", d => d.y + 4);
});
</script>
</body>
</html>
`))

// RenderHTML produces a standalone HTML page with a force-directed layout of
// the graph.
func RenderHTML(g *Graph) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode topology graph: %w", err)
	}

	var sb strings.Builder
	err = pageTemplate.Execute(&sb, struct{ Data template.JS }{Data: template.JS(data)})
	if err != nil {
		return "", fmt.Errorf("render topology page: %w", err)
	}
	return sb.String(), nil
}
