package web

import (
	"html/template"

	"github.com/dustin/go-humanize"
)

var funcs = template.FuncMap{
	"comma": humanize.Comma,
}

var indexTmpl = template.Must(template.New("index").Funcs(funcs).Parse(`<html>
<head><title>{{.ServerName}}</title></head>
<body>
<h1>{{.ServerName}}</h1>
{{if .UserName}}
<p>Logged in as {{.UserName}}. <a href="/user">Your report</a></p>
{{else}}
<h2>Log in or register</h2>
<form action="/new_user" method="post">
<p><label for="name">Name</label><br><input id="name" name="name" maxlength="64"></p>
<p><label for="password">Password</label><br><input id="password" name="password" type="password"></p>
<p><button type="submit">Enter</button></p>
</form>
{{end}}
<h2>Building types</h2>
<ul>
{{range .BuildingTypes}}<li><a href="/building_type?id={{.ID.Index}}">{{.Name}}</a></li>
{{end}}</ul>
<footer>Report generated at <time>{{.Now}}</time></footer>
</body>
</html>`))

var userTmpl = template.Must(template.New("user").Funcs(funcs).Parse(`<html>
<head><title>{{.Name}}</title></head>
<body>
<header><h1>Navigation</h1><ul><li>Go <a href="/">back to main page</a></li></ul></header>
<h1>{{.Name}}</h1>
<h2>Balance</h2>
<p>Savings: {{.Balance}}</p>
<h2>Stockpiles</h2>
<ul>
{{range .Stockpiles}}<li>{{.Name}} {{comma .Amount}}</li>
{{end}}</ul>
<h2>Ownership</h2>
{{if .Buildings}}<ul>
{{range .Buildings}}<li><a href="/building?id={{.ID.Index}}">{{.Name}}</a></li>
{{end}}</ul>{{else}}None{{end}}
</body>
</html>`))

var buildingTmpl = template.Must(template.New("building").Funcs(funcs).Parse(`<html>
<head><title>{{.Name}}</title></head>
<body>
<header><h1>Navigation</h1><ul><li>Go <a href="/">back to main page</a></li></ul></header>
<h1>{{.Name}}</h1>
<p>Current action: {{if .ActivityName}}{{.ActivityName}}{{else}}None{{end}}</p>
<h2>Stockpiles</h2>
<ul>
{{range .Stockpiles}}<li>{{.Name}} {{comma .Amount}}</li>
{{end}}</ul>
<h2>Incoming transfers</h2>
{{if .Incoming}}<ul>
{{range .Incoming}}<li>{{comma .Volume}} {{.Commodity}} from {{.Other}}</li>
{{end}}</ul>{{else}}None{{end}}
<h3>Set up incoming transfer</h3>
<form action="/set_transfer" method="post">
<input name="id2" type="hidden" value="{{.Storage.Index}}">
<p><label for="source_storage_select">Select source storage</label><br>
<select name="id" id="source_storage_select">
{{range .OwnerStorages}}<option value="{{.ID.Index}}">{{.Label}}</option>
{{end}}</select></p>
<p><select name="id3" id="commodity_select_in">
{{range .Commodities}}<option value="{{.ID.Index}}">{{.Name}}</option>
{{end}}</select></p>
<p><label for="volume_in">Volume</label><br>
<input type="number" id="volume_in" name="volume" min="0" max="5"></p>
<p><button type="submit">Request transfer change</button></p>
</form>
<h2>Outgoing transfers</h2>
{{if .Outgoing}}<ul>
{{range .Outgoing}}<li>{{comma .Volume}} {{.Commodity}} to {{.Other}}</li>
{{end}}</ul>{{else}}None{{end}}
<h3>Set up outgoing transfer</h3>
<form action="/set_transfer" method="post">
<input name="id" type="hidden" value="{{.Storage.Index}}">
<p><label for="target_storage_select">Select target storage</label><br>
<select name="id2" id="target_storage_select">
{{range .OwnerStorages}}<option value="{{.ID.Index}}">{{.Label}}</option>
{{end}}</select></p>
<p><select name="id3" id="commodity_select_out">
{{range .Commodities}}<option value="{{.ID.Index}}">{{.Name}}</option>
{{end}}</select></p>
<p><label for="volume_out">Volume</label><br>
<input type="number" id="volume_out" name="volume" min="0" max="5"></p>
<p><button type="submit">Request transfer change</button></p>
</form>
{{if .Constructed}}
<h2>Operation control</h2>
<form action="/edit_building" method="post">
<input name="id" type="hidden" value="{{.ID.Index}}">
<label for="activity_select">Select activity of the building</label>
<select name="id2" id="activity_select">
{{range .Activities}}<option value="{{.Slot}}">{{.Name}}</option>
{{end}}</select>
<p><button type="submit">Request settings change</button></p>
</form>
{{else}}
<h2>Under construction</h2>
<ul>
{{range .Construction}}<li>
<label>{{.Commodity}} ({{comma .Current}} out of {{comma .Required}})</label><br>
<progress max="{{.Required}}" value="{{.Current}}"></progress>
</li>
{{end}}</ul>
{{end}}
</body>
</html>`))

var buildingTypeTmpl = template.Must(template.New("building_type").Funcs(funcs).Parse(`<html>
<head><title>{{.Name}}</title></head>
<body>
<header><h1>Navigation</h1><ul><li>Go <a href="/">back to main page</a></li></ul></header>
<h1>{{.Name}}</h1>
<h2>Construction</h2>
<ul>
{{range .Construction}}<li>{{.Commodity}}: {{comma .Required}}</li>
{{end}}</ul>
<form action="/build" method="post">
<input name="id" type="hidden" value="{{.ID.Index}}">
<p><button type="submit">Request construction</button></p>
</form>
<h2>Potential activities</h2>
<ul>
{{range .Activities}}<li><a href="/activity?id={{.ID.Index}}">{{.Name}}</a></li>
{{end}}</ul>
</body>
</html>`))

var activityTmpl = template.Must(template.New("activity").Funcs(funcs).Parse(`<html>
<head><title>{{.Name}}</title></head>
<body>
<header><h1>Navigation</h1><ul><li>Go <a href="/">back to main page</a></li></ul></header>
<h1>{{.Name}}</h1>
<h2>Inputs</h2>
{{if .Inputs}}<ul>
{{range .Inputs}}<li>{{.Name}}: {{comma .Amount}}</li>
{{end}}</ul>{{else}}None{{end}}
<h2>Outputs</h2>
{{if .Outputs}}<ul>
{{range .Outputs}}<li>{{.Name}}: {{comma .Amount}}</li>
{{end}}</ul>{{else}}None{{end}}
</body>
</html>`))

var messageTmpl = template.Must(template.New("message").Parse(`<html>
<head><title>{{.Title}}</title></head>
<body>
<header><h1>Navigation</h1><ul><li>Go <a href="/">back to main page</a></li></ul></header>
<p>{{.Body}}</p>
</body>
</html>`))
