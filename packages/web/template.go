package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>User Management Portal</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; min-height: 100vh; color: #262730; }
aside { width: 18rem; background: #f0f2f6; padding: 1.5rem; box-sizing: border-box; }
main { flex: 1; max-width: 46rem; margin: 0 auto; padding: 2rem 1.5rem; }
label { display: block; margin-top: .75rem; font-size: .9rem; }
input, select { width: 100%; padding: .45rem; margin-top: .25rem; box-sizing: border-box; }
button { margin-top: 1rem; padding: .45rem 1rem; }
small { color: #6b6f76; }
pre, textarea { width: 100%; box-sizing: border-box; background: #f8f9fb; padding: .75rem; overflow: auto; font-family: ui-monospace, monospace; }
.error { background: #ffebeb; color: #7d1a1a; padding: .75rem; border-radius: .25rem; margin-top: 1rem; }
.status { margin-top: 1.25rem; }
footer { margin-top: 2.5rem; border-top: 1px solid #ddd; padding-top: .5rem; color: #6b6f76; font-size: .85rem; }
</style>
</head>
<body>
<form method="post" action="/" style="display: contents">
<aside>
  <h3>App &amp; Authentication</h3>
  <label for="base_url">API App URL</label>
  <input id="base_url" name="base_url" value="{{.BaseURL}}" autocomplete="off">
  <small>Enter your App location</small>
  <label for="token">Bearer token</label>
  <input id="token" name="token" type="password" value="{{.Token}}" autocomplete="off">
  <small>Enter token</small>
</aside>
<main>
  <h1>User Management</h1>
  <p>Front End UI for User Management App</p>

  <label for="action">Select action</label>
  <select id="action" name="action" onchange="this.form.requestSubmit(document.getElementById('select'))">
  {{- range .Actions}}
    <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
  {{- end}}
  </select>
  <button id="select" name="intent" value="select">Select</button>

  <h2>{{.Spec.Title}}</h2>
  {{- if .Spec.Note}}
  <p>{{.Spec.Note}}</p>
  {{- end}}
  {{- range .Fields}}
  <label for="f_{{.Name}}">{{.Name}}</label>
  <input id="f_{{.Name}}" name="{{.Name}}" value="{{.Value}}" autocomplete="off">
  {{- end}}
  <button name="intent" value="send">{{.Spec.Button}}</button>

  {{- if .Error}}
  <div class="error">{{.Error}}</div>
  {{- end}}
  {{- with .View}}
  {{- if .Failed}}
  <div class="error">{{.ErrorMessage}}</div>
  {{- else}}
  <p class="status">Status: <strong>{{.StatusCode}}</strong></p>
  {{- if .IsJSON}}
  <pre>{{.Pretty}}</pre>
  {{- else}}
  <label for="raw">Raw response (text)</label>
  <textarea id="raw" rows="10" readonly>{{.Text}}</textarea>
  {{- end}}
  {{- end}}
  {{- end}}

  <footer>Note: UI for managing the user data</footer>
</main>
</form>
</body>
</html>
`))
